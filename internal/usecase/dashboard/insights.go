package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// Insight codes, one per rule, in evaluation order
const (
	InsightNoInvestmentThisMonth = "no_investment_this_month"
	InsightTargetIncomplete      = "target_allocation_incomplete"
	InsightGoalTopUp             = "goal_top_up_suggestion"
	InsightConcentration         = "concentration_warning"
)

// Insight is a short advisory message derived from the snapshot.
// GoalID and ClassKey carry the subject of the goal/concentration rules so
// the UI can link to it.
type Insight struct {
	Code     string
	Title    string
	Body     string
	GoalID   *uuid.UUID
	ClassKey string
}

// EvaluateInsights runs the fixed, ordered rule set over the snapshot and
// the raw investment list. Rules are independent and additive: each
// contributes zero or one insight and none short-circuits another.
// The load time is injected rather than read from a global clock.
func EvaluateInsights(snap *Snapshot, investments []*domain.Investment, now time.Time) []Insight {
	insights := make([]Insight, 0, 4)

	if in := noInvestmentThisMonth(investments, now); in != nil {
		insights = append(insights, *in)
	}
	if in := targetAllocationIncomplete(snap); in != nil {
		insights = append(insights, *in)
	}
	if in := goalTopUpSuggestion(snap); in != nil {
		insights = append(insights, *in)
	}
	if in := concentrationWarning(snap); in != nil {
		insights = append(insights, *in)
	}

	return insights
}

// noInvestmentThisMonth fires when no investment's calendar date falls in
// the current month. The comparison is by year-month key; "current" uses the
// UTC month of the load time while stored dates are plain calendar dates,
// so near a month boundary the two can disagree by a day. Known and
// accepted until the timezone policy settles.
func noInvestmentThisMonth(investments []*domain.Investment, now time.Time) *Insight {
	key := now.UTC().Format("2006-01")
	for _, inv := range investments {
		if inv.InvestedAt.Format("2006-01") == key {
			return nil
		}
	}
	return &Insight{
		Code:  InsightNoInvestmentThisMonth,
		Title: "Nenhum aporte este mês",
		Body:  "Você ainda não registrou nenhum aporte neste mês. Aportes regulares mantêm suas metas no ritmo.",
	}
}

// targetAllocationIncomplete fires when the configured targets sum to
// strictly between 0 and 100. A sum of exactly 0 means no targets are
// configured and a sum of exactly 100 is well-formed; neither is flagged.
func targetAllocationIncomplete(snap *Snapshot) *Insight {
	// All configured targets count, including classes that have no row
	// because nothing is invested in them yet
	total := snap.TargetTotalPercent
	if total <= 0 || total >= 100 {
		return nil
	}
	return &Insight{
		Code:  InsightTargetIncomplete,
		Title: "Alocação alvo incompleta",
		Body:  fmt.Sprintf("Seus alvos de alocação somam %.1f%%. Complete a distribuição até 100%% para acompanhar o desvio de toda a carteira.", total),
	}
}

// goalTopUpSuggestion picks, among the goals with a positive shortfall, the
// one with the smallest missing amount: the easiest win
func goalTopUpSuggestion(snap *Snapshot) *Insight {
	var best *GoalRow
	var bestMissing decimal.Decimal

	for i := range snap.Goals {
		g := &snap.Goals[i]
		missing := g.TargetAmount.Sub(g.InvestedAmount)
		if missing.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if best == nil || missing.LessThan(bestMissing) {
			best = g
			bestMissing = missing
		}
	}

	if best == nil {
		return nil
	}
	goalID := best.ID
	return &Insight{
		Code:   InsightGoalTopUp,
		Title:  "Meta ao seu alcance",
		Body:   fmt.Sprintf("Faltam %s para concluir a meta %q. É a sua meta mais próxima de fechar.", bestMissing.StringFixed(2), best.Title),
		GoalID: &goalID,
	}
}

// concentrationWarning examines only the largest class row. It fires when
// that class has a configured target and its real share exceeds the target.
// A class without a target never triggers it, however concentrated.
func concentrationWarning(snap *Snapshot) *Insight {
	if len(snap.Classes) == 0 {
		return nil
	}
	top := snap.Classes[0]
	if top.TargetPercent == nil || top.RealPercent <= *top.TargetPercent {
		return nil
	}
	return &Insight{
		Code:     InsightConcentration,
		Title:    "Concentração acima do alvo",
		Body:     fmt.Sprintf("%s representa %.1f%% da carteira, acima do alvo de %.1f%%.", top.Name, top.RealPercent, *top.TargetPercent),
		ClassKey: top.ClassKey,
	}
}
