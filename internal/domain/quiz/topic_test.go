package quiz_test

import (
	"slices"
	"testing"

	"github.com/geoquiz/backend/internal/domain/quiz"
)

func TestSelectRange(t *testing.T) {
	countries := []string{"Sverige", "Norge", "Danmark", "Finland"}

	got := quiz.SelectRange(countries, 1, 3)

	if !slices.Equal(got, []string{"Sverige", "Norge", "Danmark"}) {
		t.Errorf("expected countries[0:3], got %v", got)
	}
	if slices.Contains(got, "Finland") {
		t.Error("expected Finland to be outside the range")
	}
}

func TestSelectRange_ReturnsCopy(t *testing.T) {
	countries := []string{"Sverige", "Norge", "Danmark", "Finland"}

	got := quiz.SelectRange(countries, 1, 2)
	got[0] = "Island"

	if countries[0] != "Sverige" {
		t.Error("expected the full pool to be untouched")
	}
}

func TestSelectRange_Clamps(t *testing.T) {
	countries := []string{"Sverige", "Norge", "Danmark", "Finland"}

	tests := []struct {
		start, stop int
		want        []string
	}{
		{0, 2, []string{"Sverige", "Norge"}},
		{3, 99, []string{"Danmark", "Finland"}},
		{4, 4, []string{"Finland"}},
		{3, 2, []string{}},
		{5, 9, []string{}},
	}

	for _, tt := range tests {
		got := quiz.SelectRange(countries, tt.start, tt.stop)
		if !slices.Equal(got, tt.want) {
			t.Errorf("SelectRange(%d, %d): expected %v, got %v", tt.start, tt.stop, tt.want, got)
		}
	}
}

func TestTopicPool(t *testing.T) {
	d := nordic()

	questions, answers := quiz.TopicCountryCapital.Pool(d)
	if questions[0] != "Sverige" || answers["Sverige"] != "Stockholm" {
		t.Errorf("unexpected countries pool: %v %v", questions, answers)
	}

	questions, answers = quiz.TopicCapitalCountry.Pool(d)
	if questions[0] != "Stockholm" || answers["Stockholm"] != "Sverige" {
		t.Errorf("unexpected capitals pool: %v %v", questions, answers)
	}

	questions, answers = quiz.TopicFlags.Pool(d)
	if questions[0] != "Sverige" || answers != nil {
		t.Errorf("expected flags to use countries without a lookup, got %v %v", questions, answers)
	}
}

func TestParseTopicAndMode(t *testing.T) {
	for _, topic := range quiz.Topics {
		got, err := quiz.ParseTopic(topic.String())
		if err != nil || got != topic {
			t.Errorf("ParseTopic(%q): expected %v, got %v (%v)", topic.String(), topic, got, err)
		}
	}
	for _, mode := range quiz.Modes {
		got, err := quiz.ParseMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseMode(%q): expected %v, got %v (%v)", mode.String(), mode, got, err)
		}
	}

	if _, err := quiz.ParseTopic("rivers"); err == nil {
		t.Error("expected error for unknown topic")
	}
	if _, err := quiz.ParseMode("multiple-choice"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSelectionComplete(t *testing.T) {
	if (quiz.Selection{Topic: quiz.TopicFlags}).Complete() {
		t.Error("expected selection without mode to be incomplete")
	}
	if (quiz.Selection{Mode: quiz.ModeFreeText}).Complete() {
		t.Error("expected selection without topic to be incomplete")
	}
	if !(quiz.Selection{Topic: quiz.TopicFlags, Mode: quiz.ModeFreeText}).Complete() {
		t.Error("expected full selection to be complete")
	}
}
