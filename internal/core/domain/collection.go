package domain

// Collection is one of the five fixed Thrivera wellness collections.
type Collection string

const (
	CollectionMindAndMood      Collection = "Mind and Mood"
	CollectionMovementAndFlow  Collection = "Movement and Flow"
	CollectionRestAndSleep     Collection = "Rest and Sleep"
	CollectionSupportiveLiving Collection = "Supportive Living"
	CollectionEverydayComforts Collection = "Everyday Comforts"
)

// Collections lists every collection in enumeration order. The order is
// load-bearing: the scoring classifier breaks ties by first-seen collection.
var Collections = []Collection{
	CollectionMindAndMood,
	CollectionMovementAndFlow,
	CollectionRestAndSleep,
	CollectionSupportiveLiving,
	CollectionEverydayComforts,
}

func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// ShoppingFields are the Google Shopping feed attributes derived per product.
type ShoppingFields struct {
	Category      string `json:"category"`
	Gender        string `json:"gender"`
	AgeGroup      string `json:"age_group"`
	Condition     string `json:"condition"`
	CustomProduct string `json:"custom_product"`
	CustomLabel0  string `json:"custom_label_0"`
	CustomLabel1  string `json:"custom_label_1"`
	CustomLabel2  string `json:"custom_label_2"`
	CustomLabel3  string `json:"custom_label_3"`
	CustomLabel4  string `json:"custom_label_4"`
}
