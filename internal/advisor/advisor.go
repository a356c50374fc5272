package advisor

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"github.com/finsift-dev/finsift/internal/model"
)

// Mode selects how much digging the advice does.
type Mode string

const (
	ModeQuick Mode = "quick"
	ModeDeep  Mode = "deep"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// Advisor generates markdown advice from a Summary. With a nil client it
// always uses the deterministic local rule-based generator.
type Advisor struct {
	client *openai.Client
	model  string
}

// New creates an Advisor. apiKey may be empty, in which case only the
// local generator is available.
func New(apiKey, model string) *Advisor {
	a := &Advisor{model: model}
	if a.model == "" {
		a.model = DefaultModel
	}
	if apiKey != "" {
		a.client = openai.NewClient(apiKey)
	}
	return a
}

// Advise produces markdown advice for the summary. When a remote client is
// configured it is tried first; any remote failure falls back to the local
// generator rather than surfacing an error to the user.
func (a *Advisor) Advise(ctx context.Context, s Summary, question string, mode Mode) string {
	if a.client != nil {
		if text, err := a.remote(ctx, s, question, mode); err == nil {
			return text
		}
	}
	return LocalAdvice(s, question, mode)
}

func (a *Advisor) remote(ctx context.Context, s Summary, question string, mode Mode) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful, concise financial advisor assistant."},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(s, question, mode)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildPrompt renders the numeric summary and instructions for the model.
func buildPrompt(s Summary, question string, mode Mode) string {
	var b strings.Builder
	b.WriteString("Analyze the transaction summary below and produce a structured, actionable response in markdown.\n\n")
	b.WriteString("### Summary of dataset\n")
	fmt.Fprintf(&b, "- Transactions analysed: %d\n", s.Transactions)
	fmt.Fprintf(&b, "- Net total: %s; Income: %s; Expenses: %s\n\n", s.Total.StringFixed(2), s.Income.StringFixed(2), s.Expense.StringFixed(2))

	b.WriteString("### Top categories (top 10):\n")
	for i, c := range s.ByCategory {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", c.Label, c.Net.StringFixed(2))
	}

	b.WriteString("\n### Largest transactions:\n")
	for _, t := range s.Top {
		fmt.Fprintf(&b, "- %s %s %s\n", formatDate(t), t.Description, t.Amount.StringFixed(2))
	}

	if len(s.Monthly) > 0 {
		b.WriteString("\n### Monthly net series:\n")
		for _, m := range s.Monthly {
			fmt.Fprintf(&b, "- %s: %s\n", m.Month.Time().Format("2006-01"), m.Net.StringFixed(2))
		}
	}

	if mode == ModeDeep {
		b.WriteString("\nGo deep: recurring merchants, subscription candidates, month-over-month spikes, and a concrete savings plan.\n")
	} else {
		b.WriteString("\nKeep it short: the three most impactful actions only.\n")
	}
	if question != "" {
		fmt.Fprintf(&b, "\nUser question: %s\n", question)
	}
	return b.String()
}

// LocalAdvice is the deterministic rule-based fallback used when no remote
// capability is configured. Same numbers, no network.
func LocalAdvice(s Summary, question string, mode Mode) string {
	var b strings.Builder
	b.WriteString("**Local rule-based analysis (no AI key)**\n\n")
	fmt.Fprintf(&b, "- Transactions analysed: **%d**\n", s.Transactions)
	fmt.Fprintf(&b, "- Net total: **%s**, Income: **%s**, Expenses: **%s**\n\n",
		s.Total.StringFixed(2), s.Income.StringFixed(2), s.Expense.StringFixed(2))

	if len(s.ByCategory) > 0 {
		b.WriteString("**Top categories (by net amount):**\n")
		for i, c := range s.ByCategory {
			if i >= 8 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", c.Label, c.Net.StringFixed(2))
		}
	} else {
		b.WriteString("No category breakdown available.\n")
	}

	q := strings.ToLower(question)
	var tailored []string
	if strings.Contains(q, "save") || strings.Contains(q, "reduce") || strings.Contains(q, "budget") {
		tailored = append(tailored, "Focus immediate cuts on top discretionary categories and subscriptions.")
	}
	if strings.Contains(q, "fraud") || strings.Contains(q, "charge") || strings.Contains(q, "unauthorised") {
		tailored = append(tailored, "Check the top transactions and contact your bank/UPI provider for unexpected debits.")
	}
	if len(tailored) > 0 {
		b.WriteString("\n**Targeted suggestions:**\n")
		for _, t := range tailored {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString("\n**Action plan (rule-based):**\n")
	b.WriteString("1. Identify and categorize unknown transactions; clarify any ambiguous entries.\n")
	b.WriteString("2. Cancel unused subscriptions or downgrade plans.\n")
	b.WriteString("3. Set monthly caps for the top 3 expense categories:\n")
	writeSuggestedCaps(&b, s)

	if mode == ModeDeep {
		b.WriteString("\n**Deeper checks to run (manual):**\n")
		b.WriteString("- Inspect recurring merchant names and their dates to find subscriptions.\n")
		b.WriteString("- Compare monthly average spend vs current month to find spikes.\n")
		b.WriteString("- Create a 30-day decision rule for non-essential purchases.\n")
	}

	if question != "" {
		fmt.Fprintf(&b, "\n**Quick answer to your question:** %s\n", question)
		b.WriteString("- Prioritize trimming the largest discretionary buckets (see top categories).\n")
	}

	return b.String()
}

// writeSuggestedCaps prints a 10%-cut cap for the three biggest net
// spenders.
func writeSuggestedCaps(b *strings.Builder, s Summary) {
	totalSpend := s.Expense.Abs()
	if totalSpend.IsZero() {
		totalSpend = decimal.NewFromInt(1)
	}

	// Biggest spenders sit at the tail of the descending-by-net ordering.
	count := 0
	for i := len(s.ByCategory) - 1; i >= 0 && count < 3; i-- {
		c := s.ByCategory[i]
		if !c.Net.IsNegative() {
			break
		}
		spend := c.Net.Abs()
		percent := spend.Div(totalSpend).Mul(decimal.NewFromInt(100))
		suggested := spend.Mul(decimal.NewFromFloat(0.9))
		fmt.Fprintf(b, "   - %s: recent net %s -> suggested monthly cap %s (~%s%% of recent spend)\n",
			c.Label, c.Net.StringFixed(2), suggested.StringFixed(2), percent.StringFixed(0))
		count++
	}
}

func formatDate(t model.Transaction) string {
	if !t.HasDate() {
		return "(undated)"
	}
	return t.Date.Format("2006-01-02")
}
