package city

import "strings"

// topicKeywords is the fixed trigger vocabulary per topic. A question matches
// a topic when any keyword occurs as a substring of the lower-cased text.
var topicKeywords = map[Topic][]string{
	TopicWeather:     {"weather", "rain", "sunny", "cloudy", "wind", "humidity", "pressure"},
	TopicTemperature: {"temperature", "temp", "hot", "cold", "warm", "cool"},
	TopicTraffic:     {"traffic", "road", "route", "congestion", "delay", "commute"},
	TopicShopOffers:  {"shop", "store", "offer", "deal", "discount", "sale", "buy"},
}

// Classify maps a free-text question to the topics it mentions, in fixed
// priority order (AllTopics). A question that mentions no topic is treated as
// a general city-status query and matches every topic.
func Classify(question string) []Topic {
	q := strings.ToLower(question)

	var matched []Topic
	for _, topic := range AllTopics {
		if containsAny(q, topicKeywords[topic]) {
			matched = append(matched, topic)
		}
	}

	if len(matched) == 0 {
		return append([]Topic(nil), AllTopics...)
	}
	return matched
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
