package tga

// DataType is the image type code stored in the third byte of the header.
type DataType int

// Recognized image types. Only RLERGB selects run-length decoding, every other
// type is read as a flat run of true-color pixels.
const (
	Empty DataType = iota
	UncompressedColorMapped
	UncompressedRGB
	UncompressedBW
	RLEColorMapped
	RLERGB
	CompressedBW
	CompressedColorMapped
	CompressedColorMapped4
)

var dataTypes = map[byte]DataType{
	0:  Empty,
	1:  UncompressedColorMapped,
	2:  UncompressedRGB,
	3:  UncompressedBW,
	9:  RLEColorMapped,
	10: RLERGB,
	11: CompressedBW,
	32: CompressedColorMapped,
	33: CompressedColorMapped4,
}

var dataTypeStrings = [...]string{
	Empty:                   "No image data included",
	UncompressedColorMapped: "Uncompressed, color-mapped images",
	UncompressedRGB:         "Uncompressed, RGB images",
	UncompressedBW:          "Uncompressed, black and white images",
	RLEColorMapped:          "Runlength encoded color-mapped images",
	RLERGB:                  "Runlength encoded RGB images",
	CompressedBW:            "Compressed, black and white images",
	CompressedColorMapped:   "Compressed color-mapped data, using Huffman, Delta, and runlength encoding",
	CompressedColorMapped4:  "Compressed color-mapped data, using Huffman, Delta, and runlength encoding. 4-pass quadtree-type process",
}

// parseDataType maps a raw type code to a DataType. Unknown codes are
// treated as Empty rather than rejected.
func parseDataType(b byte) DataType {
	if t, ok := dataTypes[b]; ok {
		return t
	}
	return Empty
}

func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeStrings) {
		return "Unknown"
	}
	return dataTypeStrings[t]
}
