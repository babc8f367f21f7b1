package nodelayout

const (
	defaultWordBits       = 64
	defaultEntryWidthBits = 7
	maxEntryWidthBits     = 64
	byteBits              = 8

	l1Bytes     = 32768
	l2Bytes     = 262144
	l3Bytes     = 8388608
	page4kBytes = 4096
	page2MBytes = 2048 * 1024
)
