package confidence

import (
	"sort"

	"github.com/ppiankov/credence/internal/model"
)

// followUpCatalog is the fixed pool of candidate questions. Priorities are
// adjusted per response before ranking.
var followUpCatalog = []model.FollowUpQuestion{
	{Question: "Which sources support the main claim here?", Category: "verification", Priority: 0.8, EstimatedValue: 0.9},
	{Question: "Has this information been updated recently?", Category: "verification", Priority: 0.6, EstimatedValue: 0.7},
	{Question: "Can you explain this topic in more depth?", Category: "expansion", Priority: 0.5, EstimatedValue: 0.6},
	{Question: "What are the counter-arguments to this answer?", Category: "expansion", Priority: 0.5, EstimatedValue: 0.7},
	{Question: "Are the numbers in this answer independently verifiable?", Category: "fact_check", Priority: 0.7, EstimatedValue: 0.8},
	{Question: "Does this answer conflict with anything said earlier?", Category: "fact_check", Priority: 0.6, EstimatedValue: 0.7},
	{Question: "Is this answer appropriate for the learner's level?", Category: "context", Priority: 0.4, EstimatedValue: 0.6},
	{Question: "What background material would help understand this?", Category: "context", Priority: 0.4, EstimatedValue: 0.5},
}

// SuggestFollowUps proposes questions for the learner or a reviewer, ranked
// by priority * estimated value. Low confidence promotes verification and
// fact-check questions.
func (s *Scorer) SuggestFollowUps(score model.ConfidenceScore, max int) []model.FollowUpQuestion {
	if max <= 0 {
		max = 4
	}

	questions := make([]model.FollowUpQuestion, len(followUpCatalog))
	copy(questions, followUpCatalog)

	if score.Overall < 0.6 {
		for i := range questions {
			if questions[i].Category == "verification" || questions[i].Category == "fact_check" {
				questions[i].Priority = model.Clamp01(questions[i].Priority + 0.2)
			}
		}
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Priority*questions[i].EstimatedValue >
			questions[j].Priority*questions[j].EstimatedValue
	})

	if len(questions) > max {
		questions = questions[:max]
	}
	return questions
}
