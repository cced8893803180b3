package ai

import (
	"fmt"
	"strings"

	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
)

// SystemInstruction is the constant persona sent with every analysis call.
// It is the only place that teaches the model the output grammar; prompts
// built below only reference the tags by name, they never emit them.
const SystemInstruction = `You are NutriAmiga, an AI that acts as a daily food and health guide.
Your job is to help ordinary people eat better and stay active.
Always answer briefly, warmly and with motivation. Use emojis.
RULES:
- When analyzing a meal, be specific about its benefits or points of attention.
- List every ingredient you can identify, one tag per ingredient, in the form
  [ITEM: name | quantity or weight | integer calories].
- After the items ALWAYS emit exactly one [TOTAL_CALORIES: integer] tag and one
  [STATUS: VERDE|AMARELO|AZUL] tag.
- When analyzing an exercise, skip the items and end the text with
  [STATUS:VERDE][CALORIES:integer][TYPE:EXERCISE].
- STATUS meaning: VERDE (healthy), AMARELO (moderate), AZUL (workout/recovery).`

// ChatInstruction is the persona for the free conversation flow. No grammar
// tags are requested there.
const ChatInstruction = `You are NutriAmiga, a friendly nutrition companion.
Answer questions about food, hydration and training in short motivating
messages. Use emojis. Never prescribe medication or diagnose conditions.`

// TipPrompt asks for the once-a-day dashboard tip.
const TipPrompt = `Give me one short nutrition or hydration tip for today. One or two sentences, motivating tone.`

// Mode selects which flavor of analysis prompt is built.
type Mode string

const (
	ModeMealLog     Mode = "meal"
	ModeSuggestion  Mode = "suggestion"
	ModeExerciseLog Mode = "exercise"
)

// PromptContext carries the per-call parameters embedded into the prompt.
type PromptContext struct {
	// Slot is the meal-time bucket, used by meal and suggestion prompts.
	Slot string
	// WeightKG is the user's current weight, used to scale exercise burns.
	WeightKG float64
}

// BuildPrompt produces the instruction string for one analysis call. Pure
// function of its inputs.
func BuildPrompt(mode Mode, text string, pctx PromptContext) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errorvalues.ErrEmptyDescription
	}
	switch mode {
	case ModeMealLog:
		return fmt.Sprintf(
			`MEAL (%s): I ate "%s". Break it down per ingredient with one ITEM tag each, then give the total calories and the status.`,
			pctx.Slot, text,
		), nil
	case ModeSuggestion:
		return fmt.Sprintf(
			`SUGGESTION (%s): I have these ingredients at home: "%s". Suggest one recipe using ONLY these ingredients. Break the recipe down per ingredient with one ITEM tag each, then give the total calories and the status.`,
			pctx.Slot, text,
		), nil
	case ModeExerciseLog:
		return fmt.Sprintf(
			`EXERCISE: I did "%s". My current weight: %.1fkg. Estimate the calories I burned, scaled to my weight, and report them with the CALORIES tag.`,
			text, pctx.WeightKG,
		), nil
	default:
		return "", errorvalues.ErrUnknownMode
	}
}
