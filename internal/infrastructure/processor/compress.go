package processor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

// Output is always JPEG at this quality, whatever the input format.
const jpegQuality = 50

type Compressor struct {
}

func New() *Compressor {
	return &Compressor{}
}

func (c *Compressor) Compress(data []byte) ([]byte, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("Compressor - Compress - detected %s: %w", mtype.String(), errs.ErrUnsupportedImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("Compressor - Compress - imaging.Decode: %w", err)
	}

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	if err != nil {
		return nil, fmt.Errorf("Compressor - Compress - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
