// Package questions generates technical interview questions for a tech stack.
package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/structured"
)

// MaxPerTechnology caps the questions kept for one technology.
const MaxPerTechnology = 5

type TechQuestions struct {
	Technology string   `json:"technology" jsonschema:"required,description=Technology name exactly as given"`
	Questions  []string `json:"questions" jsonschema:"required,description=Three to five interview questions for the technology"`
}

type Generator interface {
	Generate(ctx context.Context, techs []string) ([]TechQuestions, error)
}

const (
	generateToolName        = "generate_tech_questions"
	generateToolDescription = "Return interview questions grouped by technology."
)

const interviewerSystemPrompt = "You are a senior technical interviewer."

const questionsInstruction = "Based on the candidate's declared tech stack, generate 3-5 interview questions per item. " +
	"Questions should be practical and progressively challenging. " +
	"Return one entry for every tech provided."

const questionSetSchema = `{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "technology": {"type": "string"},
          "questions": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["technology", "questions"]
      }
    }
  },
  "required": ["items"]
}`

type questionSet struct {
	Items []TechQuestions `json:"items" jsonschema:"required,description=One entry per technology in the order given"`
}

type ToolBasedGenerator struct {
	chain *structured.Chain[[]string, questionSet]
}

func NewToolBasedGenerator(o oracle.Oracle) (*ToolBasedGenerator, error) {
	chain, err := structured.NewChain[[]string, questionSet](
		o,
		buildQuestionsPrompt,
		generateToolName,
		generateToolDescription,
		structured.WithSchema(questionSetSchema),
		structured.WithModelOptions(model.WithTemperature(0.2), model.WithMaxTokens(800)),
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedGenerator{chain: chain}, nil
}

func (g *ToolBasedGenerator) Generate(ctx context.Context, techs []string) ([]TechQuestions, error) {
	if len(techs) == 0 {
		return nil, nil
	}
	set, err := g.chain.Invoke(ctx, techs)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	out := normalize(set.Items)
	if len(out) == 0 {
		return nil, fmt.Errorf("generate questions: no questions returned")
	}
	return out, nil
}

func buildQuestionsPrompt(ctx context.Context, techs []string) ([]*schema.Message, error) {
	return []*schema.Message{
		schema.SystemMessage(interviewerSystemPrompt),
		schema.UserMessage(fmt.Sprintf("Tech stack: %s\n%s\nCall the '%s' tool with the result.",
			strings.Join(techs, ", "), questionsInstruction, generateToolName)),
	}, nil
}

// normalize drops blank questions and entries without any, and truncates
// each list to MaxPerTechnology.
func normalize(items []TechQuestions) []TechQuestions {
	out := make([]TechQuestions, 0, len(items))
	for _, item := range items {
		tech := strings.TrimSpace(item.Technology)
		if tech == "" {
			continue
		}
		qs := make([]string, 0, len(item.Questions))
		for _, q := range item.Questions {
			if q = strings.TrimSpace(q); q != "" {
				qs = append(qs, q)
			}
		}
		if len(qs) == 0 {
			continue
		}
		if len(qs) > MaxPerTechnology {
			qs = qs[:MaxPerTechnology]
		}
		out = append(out, TechQuestions{Technology: tech, Questions: qs})
	}
	return out
}

// TemplateGenerator never fails; it asks three generic questions per technology.
type TemplateGenerator struct{}

func (TemplateGenerator) Generate(ctx context.Context, techs []string) ([]TechQuestions, error) {
	out := make([]TechQuestions, 0, len(techs))
	for _, tech := range techs {
		out = append(out, TechQuestions{
			Technology: tech,
			Questions: []string{
				fmt.Sprintf("Describe a project where you used %s.", tech),
				fmt.Sprintf("What are common pitfalls when working with %s?", tech),
				fmt.Sprintf("How would you debug a production issue related to %s?", tech),
			},
		})
	}
	return out, nil
}

type FailbackGenerator struct {
	generators []Generator
}

func NewFailbackGenerator(generators ...Generator) *FailbackGenerator {
	return &FailbackGenerator{generators: generators}
}

func (g *FailbackGenerator) Generate(ctx context.Context, techs []string) ([]TechQuestions, error) {
	var lastErr error
	for _, generator := range g.generators {
		qs, err := generator.Generate(ctx, techs)
		if err == nil {
			return qs, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all question generators failed: %w", lastErr)
}

// NewDefaultGenerator asks the oracle and falls back to templated questions.
func NewDefaultGenerator(o oracle.Oracle) (*FailbackGenerator, error) {
	toolGen, err := NewToolBasedGenerator(o)
	if err != nil {
		return nil, err
	}
	return NewFailbackGenerator(toolGen, TemplateGenerator{}), nil
}
