package pptx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ppt "github.com/VantageDataChat/GoPPT"
)

var ErrNoSlides = errors.New("presentation has no slides")

// WriteTo writes p as a PowerPoint 2007 package.
func WriteTo(p *ppt.Presentation, w io.Writer) error {
	if SlideCount(p) == 0 {
		return ErrNoSlides
	}
	writer, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return writer.(*ppt.PPTXWriter).WriteTo(w)
}

// Save writes p to filename. The package goes to a temporary file in the
// same directory first and is renamed over filename once complete, so a
// failed save leaves an existing file as it was.
func Save(p *ppt.Presentation, filename string) (err error) {
	if SlideCount(p) == 0 {
		return ErrNoSlides
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := WriteTo(p, tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
