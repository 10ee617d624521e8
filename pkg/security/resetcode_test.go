package security_test

import (
	"regexp"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/security"
	"github.com/stretchr/testify/require"
)

var resetCodePattern = regexp.MustCompile(`^[0-9a-f]{12}$`)

func TestGenerateResetCodeFormat(t *testing.T) {
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		code, err := security.GenerateResetCode()
		require.NoError(t, err)
		require.Regexp(t, resetCodePattern, code)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 60, "reset codes should not repeat")
}
