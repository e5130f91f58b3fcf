package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// decodeArg converts the coerced argument name into dst through its JSON
// form, so input objects land on the domain types' json tags.
func decodeArg(args map[string]any, name string, dst any) error {
	raw, err := json.Marshal(args[name])
	if err != nil {
		return domain.NewValidationError(name, "invalid value")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return domain.NewValidationError(name, fmt.Sprintf("invalid value: %v", err))
	}
	return nil
}
