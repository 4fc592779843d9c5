/*
Package tga implements a Truevision TGA image decoder.

Uncompressed and run-length encoded true-color images are supported at 16, 24
and 32 bits per pixel. The 18 byte header is followed directly by the pixel
data; the image identification field, color map and any TGA 2.0 footer are
not interpreted.

Pixels are returned in the order they are stored in the file. No attempt is
made to honour the screen origin bit of the image descriptor so a typical
bottom-left origin image will appear upside down when drawn top to bottom.

Targa has no leading magic bytes so the format is not registered with the
image package; an empty magic string would match every input, including PNG,
GIF and JPEG data, ahead of their own decoders. Call Decode or DecodeConfig
directly instead:

	m, err := tga.Decode(r)
*/
package tga

const (
	headerSize = 18

	typeOffset  = 2
	colorMapLen = 9
	maxPacket   = 0x80
)
