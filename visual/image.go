package visual

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/peterhil/serpent/codon"
)

// SequenceImage renders a codon index stream as an RGB image of the
// given width: three consecutive indices form one pixel, scaled from
// [0,64) to full channel range. Sentinel codons render as full
// brightness so gaps and ambiguity stand out. Trailing indices that
// do not fill the last row are dropped.
func SequenceImage(codons []byte, width int) *image.RGBA {
	height := len(codons) / (3 * width)
	if height == 0 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	channel := func(i int) uint8 {
		if i >= len(codons) || codons[i] >= codon.NCodon {
			return 255
		}
		return uint8(int(codons[i]) * 255 / (codon.NCodon - 1))
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 3 * (y*width + x)
			img.SetRGBA(x, y, color.RGBA{
				R: channel(i),
				G: channel(i + 1),
				B: channel(i + 2),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG saves an image as PNG.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
