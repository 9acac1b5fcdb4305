package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ImageKind tells how an Image keeps its bytes.
type ImageKind string

const (
	// ImageEmbedded images carry the picture bytes inline. The garage
	// server returns car photos this way (base64 on the wire).
	ImageEmbedded ImageKind = "embedded"

	// ImageReferenced images point at a file on the device.
	ImageReferenced ImageKind = "referenced"
)

var (
	ErrEmptyImage       = errors.New("image has no content")
	ErrInvalidImageURI  = errors.New("image uri is not resolvable")
	ErrUnknownImageKind = errors.New("unknown image kind")
)

// Image is a car photo: either Embedded(bytes) or Referenced(uri), never
// both. Use EmbeddedImage and ReferencedImage to build one.
type Image struct {
	kind ImageKind
	data []byte
	uri  string
}

// EmbeddedImage returns an image holding a copy of data.
func EmbeddedImage(data []byte) Image {
	return Image{kind: ImageEmbedded, data: append([]byte(nil), data...)}
}

// EmbeddedImageFromBase64 decodes a standard base64 string, the format the
// garage server uses for car_image.
func EmbeddedImageFromBase64(s string) (Image, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Image{}, fmt.Errorf("decode base64 image: %w", err)
	}
	return Image{kind: ImageEmbedded, data: data}, nil
}

// ReferencedImage returns an image pointing at uri.
func ReferencedImage(uri string) Image {
	return Image{kind: ImageReferenced, uri: uri}
}

func (i Image) Kind() ImageKind { return i.kind }

// Data returns the embedded bytes, or nil for referenced images.
func (i Image) Data() []byte {
	if i.kind != ImageEmbedded {
		return nil
	}
	return append([]byte(nil), i.data...)
}

// URI returns the reference, or "" for embedded images.
func (i Image) URI() string {
	if i.kind != ImageReferenced {
		return ""
	}
	return i.uri
}

// Base64 returns the embedded bytes as standard base64.
func (i Image) Base64() string {
	if i.kind != ImageEmbedded {
		return ""
	}
	return base64.StdEncoding.EncodeToString(i.data)
}

// Validate checks that the image can be resolved at the presentation layer.
func (i Image) Validate() error {
	switch i.kind {
	case ImageEmbedded:
		if len(i.data) == 0 {
			return ErrEmptyImage
		}
		return nil
	case ImageReferenced:
		if i.uri == "" {
			return ErrEmptyImage
		}
		u, err := url.Parse(i.uri)
		if err != nil || (u.Scheme == "" && u.Path == "") {
			return fmt.Errorf("%w: %q", ErrInvalidImageURI, i.uri)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageKind, i.kind)
	}
}

// Equal reports whether both images have the same kind and content.
func (i Image) Equal(other Image) bool {
	if i.kind != other.kind {
		return false
	}
	return i.uri == other.uri && string(i.data) == string(other.data)
}

type imageJSON struct {
	Kind ImageKind `json:"kind"`
	Data []byte    `json:"data,omitempty"`
	URI  string    `json:"uri,omitempty"`
}

func (i Image) MarshalJSON() ([]byte, error) {
	out := imageJSON{Kind: i.kind}
	switch i.kind {
	case ImageEmbedded:
		out.Data = i.data
	case ImageReferenced:
		out.URI = i.uri
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownImageKind, i.kind)
	}
	return json.Marshal(out)
}

func (i *Image) UnmarshalJSON(b []byte) error {
	var in imageJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	switch in.Kind {
	case ImageEmbedded:
		*i = Image{kind: ImageEmbedded, data: in.Data}
	case ImageReferenced:
		*i = Image{kind: ImageReferenced, uri: in.URI}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageKind, in.Kind)
	}
	return nil
}
