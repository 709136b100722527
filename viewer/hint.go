package viewer

import (
	"math/big"
	"regexp"

	"github.com/duke-git/lancet/v2/formatter"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	HintAddress       = "address"
	HintSolanaAddress = "solana address"
)

var (
	hexQuantity = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)
	base58Key   = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
)

// HintFor annotates strings that look like chain values: hex quantities
// get their decimal value, addresses are tagged.
func HintFor(v Value) string {
	if v.Kind != String {
		return ""
	}
	s := v.Str
	switch {
	case IsEVMAddress(s):
		return HintAddress
	case hexQuantity.MatchString(s):
		if d, ok := HexToDecimal(s); ok {
			return "dec: " + d
		}
	case IsSolanaAddress(s):
		return HintSolanaAddress
	}
	return ""
}

func IsEVMAddress(s string) bool {
	return len(s) == 42 && common.IsHexAddress(s)
}

func IsSolanaAddress(s string) bool {
	if !base58Key.MatchString(s) {
		return false
	}
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}

// HexToDecimal converts a 0x-prefixed quantity. Leading zeros are accepted.
func HexToDecimal(s string) (string, bool) {
	if !hexQuantity.MatchString(s) {
		return "", false
	}
	n, err := hexutil.DecodeBig(s)
	if err != nil {
		var ok bool
		n, ok = new(big.Int).SetString(s[2:], 16)
		if !ok {
			return "", false
		}
	}
	return decimal.NewFromBigInt(n, 0).String(), true
}

// ResultSummary is the one-line headline shown above the tree for a
// scalar result.
func ResultSummary(method string, result gjson.Result) string {
	if !result.Exists() || result.Type == gjson.Null || result.IsObject() || result.IsArray() {
		return ""
	}
	if result.Type != gjson.String {
		return result.Raw
	}
	d, ok := HexToDecimal(result.Str)
	switch {
	case !ok:
		return result.Str
	case method == "eth_blockNumber":
		return "Block Number: " + formatter.Comma(d, "")
	default:
		return result.Str + " (dec: " + d + ")"
	}
}
