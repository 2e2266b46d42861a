// Command decoder reads a PNG file from disk, decodes it with carrotpng,
// and re-encodes the result through the standard library's image/png as a
// smoke check that the decode produced a sane raster.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/adpollak/carrotpng"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}
	defaultFilePath := filepath.Join(home, "Pictures", "smiley.png")

	var pngCLI string
	var strictTrailer bool
	flag.StringVar(&pngCLI, "png", defaultFilePath, "png file to decode")
	flag.BoolVar(&strictTrailer, "strict-trailer", false, "reject slack bytes between the last DEFLATE block and the Adler-32 trailer")
	flag.Parse()

	data, err := os.ReadFile(pngCLI)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("read %d bytes from %s", len(data), pngCLI)

	img, err := carrotpng.DecodeWithOptions(data, carrotpng.Options{StrictTrailer: strictTrailer})
	if err != nil {
		log.Fatalf("decode failed: %s", carrotpng.DescribeError(err))
	}
	log.Printf("decoded %dx%d image (alpha=%v)", img.Width, img.Height, img.HasAlpha)

	out, err := os.Create("image.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := png.Encode(out, toStdImage(img)); err != nil {
		log.Fatal(err)
	}
	log.Println("wrote image.png")
}

// toStdImage builds a stdlib image.Image from the decoded raster, used only
// for the image/png round trip above.
func toStdImage(img *carrotpng.Image) image.Image {
	bounds := image.Rect(0, 0, img.Width, img.Height)

	if img.HasAlpha {
		return &image.NRGBA{Pix: img.Pixels, Stride: img.StrideBytes, Rect: bounds}
	}

	rgba := image.NewNRGBA(bounds)
	for y := 0; y < img.Height; y++ {
		srcRow := img.Pixels[y*img.StrideBytes : (y+1)*img.StrideBytes]
		for x := 0; x < img.Width; x++ {
			si := x * 3
			di := rgba.PixOffset(x, y)
			rgba.Pix[di+0] = srcRow[si+0]
			rgba.Pix[di+1] = srcRow[si+1]
			rgba.Pix[di+2] = srcRow[si+2]
			rgba.Pix[di+3] = 0xff
		}
	}
	return rgba
}
