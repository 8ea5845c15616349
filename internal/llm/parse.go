package llm

import (
	"encoding/json"
	"fmt"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/entity"
)

// ParseStatementJSON runs the full response pipeline on a backend payload:
// normalize (year labels, confidence bounds), validate strictly against the
// statement schema, then decode. The cleaned JSON and the list of applied
// adjustments are returned for logging. Validation failures carry
// common.ErrSchemaValidation so the caller can classify them.
func ParseStatementJSON(raw []byte) (entity.IncomeStatement, []byte, []string, error) {
	cleaned, adjusted, err := NormalizeStatementJSON(raw)
	if err != nil {
		return entity.IncomeStatement{}, raw, nil, fmt.Errorf("%w: not a JSON object: %v", common.ErrSchemaValidation, err)
	}
	if err := ValidateJSONAgainstSchema(BuildStatementJSONSchema(), cleaned); err != nil {
		return entity.IncomeStatement{}, cleaned, adjusted, fmt.Errorf("%w: %v", common.ErrSchemaValidation, err)
	}
	var stmt entity.IncomeStatement
	if err := json.Unmarshal(cleaned, &stmt); err != nil {
		return entity.IncomeStatement{}, cleaned, adjusted, fmt.Errorf("%w: decode statement: %v", common.ErrSchemaValidation, err)
	}
	return stmt, cleaned, adjusted, nil
}
