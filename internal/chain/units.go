package chain

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the precision of TRX and USDT-TRC20 (1 unit = 1e6 sun).
const Decimals = 6

// ErrAmountOutOfRange reports an amount that has no exact int64 sun value.
var ErrAmountOutOfRange = errors.New("amount not representable in sun")

var maxSun = decimal.NewFromInt(math.MaxInt64)

// ToSun converts a whole-unit amount to sun. Amounts with more than six
// decimal places or beyond int64 are rejected rather than rounded.
func ToSun(amount decimal.Decimal) (int64, error) {
	shifted := amount.Shift(Decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrAmountOutOfRange, amount, Decimals)
	}
	if shifted.GreaterThan(maxSun) || shifted.LessThan(maxSun.Neg()) {
		return 0, fmt.Errorf("%w: %s is too large", ErrAmountOutOfRange, amount)
	}
	return shifted.IntPart(), nil
}

// FromSun converts sun to whole units.
func FromSun(sun int64) decimal.Decimal {
	return decimal.New(sun, -Decimals)
}

// FromSunBig converts a big-integer token amount to whole units.
func FromSunBig(sun *big.Int) decimal.Decimal {
	if sun == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(sun, -Decimals)
}
