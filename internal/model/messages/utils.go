package messages

import (
	"strings"

	"github.com/shopspring/decimal"
)

const commandParts = 2

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	split := strings.SplitN(text, " ", commandParts)

	cmd = split[0]
	// "/add@my_bot" in group chats
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	if len(split) == commandParts {
		arg = strings.TrimSpace(split[1])
	}
	return strings.ToLower(cmd), arg
}

// resolveAlias maps main menu labels and plain-word prefixes to commands.
// Prefixes only count outside an entry flow so they never eat a comment.
func resolveAlias(text string, inFlow bool) string {
	text = strings.TrimSpace(text)
	if cmd, ok := buttonCommands[text]; ok {
		return cmd
	}
	if inFlow {
		return ""
	}
	lower := strings.ToLower(strings.TrimLeft(text, "+ "))
	for _, p := range textPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.command
		}
	}
	return ""
}

func formatMoney(symbol string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
