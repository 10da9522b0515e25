// Package extract turns a conversation transcript into a candidate snapshot.
package extract

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/structured"
	"github.com/tbxark/talentscout/types"
)

const (
	extractToolName        = "extract_candidate"
	extractToolDescription = "Report every candidate detail stated in the conversation so far."
)

const extractInstruction = "Extract candidate info seen so far. " +
	"Return a JSON object with keys: full_name, email, phone, years_experience, " +
	"desired_positions (array of strings), location, tech_stack (array of strings). " +
	"If a field is unknown, set it to null or an empty array. Return JSON only."

// SnapshotSchema only requires an object. Field values are checked one by
// one so a malformed value never costs its well-formed siblings.
const SnapshotSchema = `{"type": "object"}`

type Extractor interface {
	Extract(ctx context.Context, req *types.ToolRequest[*candidate.Record]) (*candidate.Snapshot, error)
}

// rawSnapshot accepts any JSON value per key; snapshot keeps the usable ones.
type rawSnapshot struct {
	FullName         any `json:"full_name,omitempty" jsonschema:"description=Full name as a string or null if unknown"`
	Email            any `json:"email,omitempty" jsonschema:"description=Email address as a string or null if unknown"`
	Phone            any `json:"phone,omitempty" jsonschema:"description=Phone number as a string or null if unknown"`
	YearsExperience  any `json:"years_experience,omitempty" jsonschema:"description=Years of professional experience as a number or null if unknown"`
	DesiredPositions any `json:"desired_positions,omitempty" jsonschema:"description=Desired positions as an array of strings or an empty array"`
	Location         any `json:"location,omitempty" jsonschema:"description=City and country as a string or null if unknown"`
	TechStack        any `json:"tech_stack,omitempty" jsonschema:"description=Languages frameworks databases and tools as an array of strings or an empty array"`
}

func (r *rawSnapshot) snapshot() *candidate.Snapshot {
	return &candidate.Snapshot{
		FullName:         stringValue(r.FullName),
		Email:            stringValue(r.Email),
		Phone:            stringValue(r.Phone),
		YearsExperience:  r.YearsExperience,
		DesiredPositions: stringItems(r.DesiredPositions),
		Location:         stringValue(r.Location),
		TechStack:        stringItems(r.TechStack),
	}
}

// stringValue keeps v only when it is a JSON string.
func stringValue(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// stringItems keeps the string items of a JSON array; anything else yields nil.
func stringItems(v any) []string {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

type ToolBasedExtractor struct {
	chain *structured.Chain[*types.ToolRequest[*candidate.Record], rawSnapshot]
}

func NewToolBasedExtractor(o oracle.Oracle) (*ToolBasedExtractor, error) {
	chain, err := structured.NewChain[*types.ToolRequest[*candidate.Record], rawSnapshot](
		o,
		buildExtractPrompt,
		extractToolName,
		extractToolDescription,
		structured.WithSchema(SnapshotSchema),
		structured.WithModelOptions(model.WithTemperature(0), model.WithMaxTokens(400)),
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedExtractor{chain: chain}, nil
}

// Extract re-reads the whole transcript. Oracle, schema and decode failures
// are returned as errors; callers treat them as an empty snapshot.
func (e *ToolBasedExtractor) Extract(ctx context.Context, req *types.ToolRequest[*candidate.Record]) (*candidate.Snapshot, error) {
	raw, err := e.chain.Invoke(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("extract candidate: %w", err)
	}
	return raw.snapshot(), nil
}

func buildExtractPrompt(ctx context.Context, req *types.ToolRequest[*candidate.Record]) ([]*schema.Message, error) {
	contextSection, err := types.FormatToolRequest(req)
	if err != nil {
		return nil, fmt.Errorf("convert to prompt message failed: %w", err)
	}
	messages := make([]*schema.Message, 0, len(req.Messages)+1)
	messages = append(messages, req.Messages...)
	messages = append(messages, schema.SystemMessage(
		fmt.Sprintf("%s\n\n%s\n\nCall the '%s' tool with the result.", extractInstruction, contextSection, extractToolName),
	))
	return messages, nil
}
