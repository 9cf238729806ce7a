package backend

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contract.json
var contractDoc []byte

var (
	contractOnce   sync.Once
	contractSchema *openapi3.Schema
	contractErr    error
)

// enrollmentSchema lazily parses the embedded OpenAPI document and returns
// the EnrollmentRequest body schema.
func enrollmentSchema() (*openapi3.Schema, error) {
	contractOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(contractDoc)
		if err != nil {
			contractErr = fmt.Errorf("backend: parse embedded contract: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			contractErr = fmt.Errorf("backend: validate embedded contract: %w", err)
			return
		}
		if doc.Components == nil {
			contractErr = fmt.Errorf("backend: embedded contract has no components")
			return
		}
		ref, ok := doc.Components.Schemas["EnrollmentRequest"]
		if !ok || ref.Value == nil {
			contractErr = fmt.Errorf("backend: embedded contract is missing the EnrollmentRequest schema")
			return
		}
		contractSchema = ref.Value
	})
	return contractSchema, contractErr
}

// CheckPayload validates the payload against the embedded API contract before
// it goes on the wire. A failure here means the client would send a request
// the backend is documented to reject, so the caller should not POST.
func CheckPayload(p Payload) error {
	schema, err := enrollmentSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("backend: encode payload: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("backend: decode payload: %w", err)
	}
	if err := schema.VisitJSON(decoded); err != nil {
		return fmt.Errorf("backend: payload does not match API contract: %w", err)
	}
	return nil
}
