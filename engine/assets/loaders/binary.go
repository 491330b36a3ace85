package loaders

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// BinaryLoader reads compiled SPIR-V modules.
type BinaryLoader struct{}

func (bl *BinaryLoader) Load(path string) ([]uint32, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 || len(buf)%4 != 0 {
		return nil, fmt.Errorf("%s: size %d is not a whole number of words", path, len(buf))
	}
	code := bytesToBytecode(buf)
	if code[0] != metadata.SPIRVMagic {
		return nil, fmt.Errorf("%s: missing SPIR-V magic number", path)
	}
	return code, nil
}

func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/4)
	for i := range byteCode {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return byteCode
}
