package courier

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// maxPhotoSize bounds the delivery evidence photo (5MB). Larger captures are
// rejected before anything touches the network.
const maxPhotoSize = 5 * 1024 * 1024

// Photo is a captured delivery evidence image.
type Photo struct {
	Name string
	MIME string
	Data []byte
}

// Validate checks the capture client-side: it must be a non-empty image of
// at most maxPhotoSize bytes.
func (p Photo) Validate() error {
	if len(p.Data) == 0 {
		return fmt.Errorf("courier: photo is empty")
	}
	if len(p.Data) > maxPhotoSize {
		return fmt.Errorf("courier: photo exceeds %dMB", maxPhotoSize/(1024*1024))
	}
	if !strings.HasPrefix(p.MIME, "image/") {
		return fmt.Errorf("courier: %q is not an image type", p.MIME)
	}
	return nil
}

// Encoded returns the photo as an inline data URL for the delivery payload.
func (p Photo) Encoded() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
