package tokabi

// ERC20 function selectors (first 4 bytes of the keccak256 hash of the
// function signature).
var (
	SelName        = []byte{0x06, 0xfd, 0xde, 0x03} // name()
	SelSymbol      = []byte{0x95, 0xd8, 0x9b, 0x41} // symbol()
	SelDecimals    = []byte{0x31, 0x3c, 0xe5, 0x67} // decimals()
	SelTotalSupply = []byte{0x18, 0x16, 0x0d, 0xdd} // totalSupply()
)
