package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatAmount проверяет группировку разрядов и знак для больших сумм.
func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,250,000 RUB", formatAmount(1250000, "RUB"))
	assert.Equal(t, "1,250,000 RUB", formatAmount(-1250000.4, "RUB"))
	assert.Equal(t, "0 USD", formatAmount(0.3, "USD"))
	assert.Equal(t, "10,000,000,000,000,000,000 RUB", formatAmount(1e19, "RUB"))
}
