package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// hashTokenCmd produces the bcrypt hash for GATEWAY_TOKEN_HASH. The gateway
// presents the plaintext token; the service only stores the hash.
var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Hash a gateway shared token for GATEWAY_TOKEN_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		if token == "" {
			return errors.New("token must not be empty")
		}

		hash, err := auth.HashGatewayToken(token, hashTokenCost)
		if err != nil {
			return fmt.Errorf("hash token: %w", err)
		}

		fmt.Println(hash)
		return nil
	},
}

var hashTokenCost int

func init() {
	hashTokenCmd.Flags().IntVar(&hashTokenCost, "cost", 12, "bcrypt cost factor")
}
