// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package factory builds questions and choices with sensible defaults.

# Questions

	questions := factory.NewQuestionFactory(conn)
	q, err := questions.Create(ctx)                                // "How do you do ?", published now
	q, err = questions.Create(ctx, factory.WithText("Past?"), factory.PublishedDays(-30))
	unsaved := questions.Build(factory.PublishedIn(5 * time.Hour)) // not stored

pub_date defaults to the moment Build runs, not to package load time.

Setting GetOrCreate makes Create look up an existing question with the
same question_text before inserting:

	questions.GetOrCreate = true

# Choices

	choices := factory.NewChoiceFactory(conn)
	c, err := choices.Create(ctx, q, factory.WithChoiceText("Yes"), factory.WithVotes(2))

Choices default to "Choice N" with zero votes.

# Fuzzy Values

	factory.FuzzyText("Poll ", 12) // "Poll " + 12 random letters
	factory.FuzzyVotes(10)         // 0..10
	questions.Sequence()           // "Question 1", "Question 2", ...

Seed fills an empty database with demo data for local development.
*/
package factory
