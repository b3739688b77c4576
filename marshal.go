package cc1101

// Marshaling of the 24-bit frequency word in FREQ2, FREQ1, FREQ0 order.

func marshalFreqWord(w uint32) []byte {
	return []byte{byte(w >> 16), byte(w >> 8), byte(w)}
}

func unmarshalFreqWord(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
