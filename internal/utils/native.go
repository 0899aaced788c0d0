package utils

import (
	"encoding/binary"
	"unsafe"
)

// NativeOrder is the byte order of the host CPU. frms6 files carry no
// endianness tag: values are stored in the order of the acquisition machine
// and read back the same way. Files produced on a machine of the opposite
// order are out of scope.
var NativeOrder = detectNativeOrder()

func detectNativeOrder() binary.ByteOrder {
	var probe uint16 = 1
	if *(*byte)(unsafe.Pointer(&probe)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
