package service

import (
	"fmt"
	"strings"

	"finpal-server/src/models"
)

func buildQuizPrompt(answers []models.QuizAnswer, questionText func(string) string) string {
	var b strings.Builder
	for _, a := range answers {
		category := a.Category
		if category == "" {
			category = "general"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", category, questionText(a.QuestionID), a.Answer)
	}

	return fmt.Sprintf(
		`You are a friendly personal finance coach.
A user answered a short quiz about their spending habits:

%s
Write a short analysis (under 200 words) of their spending personality.
Name one strength, one risk, and two concrete habits they could adopt this month.
Use plain language. No markdown headings.`,
		b.String(),
	)
}

func buildSavingsPlanPrompt(income, goal string) string {
	return fmt.Sprintf(
		`You are a personal finance coach.
A user earns %s per month and wants to save %s per month.

Write a practical monthly savings plan (under 200 words):
- say whether the goal is realistic for that income,
- suggest how to split the remaining money across needs and wants,
- give three specific actions for the first week.
Use plain language. No markdown headings.`,
		income, goal,
	)
}

func buildDailyAnalysisPrompt(a *models.DailyAnalysis, entries []models.SpendingEntry) string {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString("- no spending recorded\n")
	}
	for _, e := range entries {
		kind := "want"
		if e.IsNecessary {
			kind = "need"
		}
		fmt.Fprintf(&b, "- %s (%s, %s): %s\n", e.Description, e.Category, kind, e.Amount.StringFixed(2))
	}

	status := "over"
	if a.OnTrack {
		status = "within"
	}

	return fmt.Sprintf(
		`You are a personal finance coach reviewing one day of spending.

Date: %s
Daily budget: %s
Total spent: %s (necessary %s, unnecessary %s)
The user is %s their target of 80%% of the daily budget.

Entries:
%s
In under 120 words, comment on the day and give one tip for tomorrow.`,
		a.Date,
		a.DailyBudget.StringFixed(2),
		a.TotalSpent.StringFixed(2),
		a.NecessarySpent.StringFixed(2),
		a.UnnecessarySpent.StringFixed(2),
		status,
		b.String(),
	)
}

func buildChatPrompt(message string, goal *models.SavingsGoal, recent []models.SpendingEntry) string {
	var ctx strings.Builder
	if goal != nil {
		fmt.Fprintf(&ctx, "Monthly income: %s\nMonthly savings goal: %s\n",
			goal.MonthlyIncome.StringFixed(2), goal.MonthlySavingsGoal.StringFixed(2))
	} else {
		ctx.WriteString("The user has not set a savings goal.\n")
	}
	if len(recent) > 0 {
		ctx.WriteString("Recent spending:\n")
		for _, e := range recent {
			fmt.Fprintf(&ctx, "- %s %s (%s): %s\n", e.Date, e.Description, e.Category, e.Amount.StringFixed(2))
		}
	} else {
		ctx.WriteString("No spending has been recorded yet.\n")
	}

	return fmt.Sprintf(
		`You are FinPal, a concise and supportive personal finance advisor.
Use the user's context when it is relevant. Do not invent numbers.

Context:
%s
User: %s`,
		ctx.String(),
		message,
	)
}
