package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
)

func TestParseChoice(t *testing.T) {
	options := []string{"5", "7", "9", "10"}

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"b", "7", true},
		{" C ", "9", true},
		{"10", "10", true},
		{"5", "5", true},
		{"1", "", false},
		{"4", "", false},
		{"E", "", false},
		{"", "", false},
		{"seven", "", false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.input, options)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseChoiceNumericOptionsMatchText(t *testing.T) {
	options := []string{"5", "3", "4", "6"}

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"3", "3", true},
		{"4", "4", true},
		{"c", "4", true},
		{"2", "", false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.input, options)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func previewController(t *testing.T, err error) *quiz.Controller {
	t.Helper()
	ctrl := quiz.NewController(problem.ProviderFunc(func(context.Context, string) (*problem.MathProblem, error) {
		if err != nil {
			return nil, err
		}
		return &problem.MathProblem{
			Question:    "3 + 4 = ?",
			Options:     []string{"6", "7", "8", "9"},
			Answer:      "7",
			Explanation: "3 加 4 等于 7",
		}, nil
	}))
	ctrl.Do(context.Background(), quiz.SelectCategory{ID: problem.CategoryAddition})
	return ctrl
}

func TestPreviewOneCorrect(t *testing.T) {
	ctrl := previewController(t, nil)
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader("x\nB\n"))

	require.True(t, previewOne(context.Background(), ctrl, in, &out, 1, 1))
	assert.Contains(t, out.String(), "3 + 4 = ?")
	assert.Contains(t, out.String(), "Enter a letter")
	assert.Contains(t, out.String(), quiz.MessageCorrect)
	assert.Equal(t, 1, ctrl.State().Stats.CorrectAnswers)
}

func TestPreviewOneIncorrectShowsExplanation(t *testing.T) {
	ctrl := previewController(t, nil)
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader("A\n"))

	require.True(t, previewOne(context.Background(), ctrl, in, &out, 1, 1))
	assert.Contains(t, out.String(), "3 加 4 等于 7")
	assert.True(t, ctrl.State().ShowExplanation)
}

func TestPreviewOneInputClosed(t *testing.T) {
	ctrl := previewController(t, nil)
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader(""))

	assert.False(t, previewOne(context.Background(), ctrl, in, &out, 1, 1))
	assert.Equal(t, 0, ctrl.State().Stats.TotalAttempts)
}

func TestPreviewOneGenerationFailed(t *testing.T) {
	ctrl := previewController(t, errors.New("quota"))
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader(""))

	require.True(t, previewOne(context.Background(), ctrl, in, &out, 1, 2))
	assert.Contains(t, out.String(), "generation failed")
	assert.Equal(t, quiz.PhaseError, ctrl.State().Phase())
}

func TestAdvance(t *testing.T) {
	calls := 0
	ctrl := quiz.NewController(problem.ProviderFunc(func(context.Context, string) (*problem.MathProblem, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("timeout")
		}
		return &problem.MathProblem{Question: "1 + 1 = ?", Options: []string{"1", "2"}, Answer: "2"}, nil
	}))
	ctx := context.Background()
	ctrl.Do(ctx, quiz.SelectCategory{ID: problem.CategoryAddition})
	require.Equal(t, quiz.PhaseError, ctrl.State().Phase())

	advance(ctx, ctrl)
	require.Equal(t, quiz.PhaseReady, ctrl.State().Phase())

	advance(ctx, ctrl)
	assert.Equal(t, 2, calls, "nothing to advance before an answer")

	ctrl.Do(ctx, quiz.SubmitAnswer{Option: "2"})
	advance(ctx, ctrl)
	assert.Equal(t, 3, calls)
	assert.Equal(t, quiz.PhaseReady, ctrl.State().Phase())
}

func TestPreviewOneCancelled(t *testing.T) {
	ctrl := previewController(t, nil)
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader("B\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, previewOne(ctx, ctrl, in, &out, 1, 1))
	assert.Empty(t, out.String())
}
