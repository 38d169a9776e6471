package ai

import (
	"context"
	"strings"
)

// stubTransport answers without calling Gemini. It is enabled by AI_STUB for
// local development and end-to-end tests.
type stubTransport struct{}

const stubTipsResponse = `{"tips":[
{"id":"1","title":"Wind-Down Routine","short":"Dim lights an hour before bed","icon":"🌙","category":"Sleep"},
{"id":"2","title":"Morning Walk","short":"Walk ten minutes in daylight after waking","icon":"🚶","category":"Physical"},
{"id":"3","title":"Box Breathing","short":"Breathe in a 4-4-4-4 pattern for two minutes","icon":"🫁","category":"Mental"},
{"id":"4","title":"Hydrate Early","short":"Drink a glass of water before coffee","icon":"💧","category":"Nutrition"},
{"id":"5","title":"Screen Curfew","short":"Park the phone outside the bedroom","icon":"📵","category":"Lifestyle"}
]}`

const stubDetailResponse = `{
"explanation":"Small consistent habits compound. This tip fits into an existing routine so it is easy to keep.",
"steps":["Step 1: Pick a fixed time of day","Step 2: Prepare what you need the night before","Step 3: Track it for one week"],
"benefits":["More consistent energy","Lower daily stress","A routine that is easy to keep"]
}`

func (stubTransport) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TransportError{Kind: KindNetwork, Err: err}
	}
	if strings.Contains(prompt, "Provide detailed guidance") {
		return stubDetailResponse, nil
	}
	return stubTipsResponse, nil
}
