package city

import (
	"reflect"
	"testing"
)

func TestClassifyPriorityOrder(t *testing.T) {
	got := Classify("What's the weather and traffic like?")
	want := []Topic{TopicWeather, TopicTraffic}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Word order in the question must not affect topic order.
	got = Classify("Any traffic problems? Also how is the weather?")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v regardless of word order, got %v", want, got)
	}
}

func TestClassifyNoKeywordFallsBackToAllTopics(t *testing.T) {
	got := Classify("Tell me about the city")
	if !reflect.DeepEqual(got, AllTopics) {
		t.Fatalf("expected all topics %v, got %v", AllTopics, got)
	}
}

func TestClassifySingleTopics(t *testing.T) {
	cases := []struct {
		question string
		want     Topic
	}{
		{"Is it going to rain today?", TopicWeather},
		{"Is it hot outside?", TopicTemperature},
		{"How bad is the congestion right now?", TopicTraffic},
		{"Any good discounts nearby?", TopicShopOffers},
	}

	for _, tc := range cases {
		got := Classify(tc.question)
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("question %q: expected [%s], got %v", tc.question, tc.want, got)
		}
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	got := Classify("WEATHER?")
	if len(got) != 1 || got[0] != TopicWeather {
		t.Fatalf("expected [weather], got %v", got)
	}
}
