package api

import "encoding/json"

// ack is the {message} envelope used by the auth endpoints.
type ack struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Profile mirrors the backend's user response. Timestamps stay as wire
// strings; the client only displays the email.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	ApprovedAt string `json:"approved_at"`
}

// ChatSession is one row of /my-chats. The workflow only cares whether any
// exist, but the full shape is decoded for future listing.
type ChatSession struct {
	ThreadID   string `json:"thread_id"`
	Title      string `json:"title"`
	CreatedAt  string `json:"created_at"`
	LastActive string `json:"last_active"`
}

// RecommendationState is the conversation state returned by the
// recommendation engine. Only the last turn is ever projected.
type RecommendationState struct {
	TurnLog             []Turn `json:"turn_log"`
	AugmentationSummary string `json:"augmentation_summary"`
}

// Turn is one question/answer/recommendation exchange. Properties are kept
// raw so individual malformed entries can be skipped during projection
// instead of failing the whole decode.
type Turn struct {
	Question              string            `json:"question"`
	AnsweredBy            string            `json:"answered_by"`
	Answer                string            `json:"answer"`
	QueryUsed             string            `json:"query_used"`
	RecommendedProperties []json.RawMessage `json:"recommended_properties"`
}

// Property matches the engine's database row shape. Numeric fields are
// pointers: absent means "N/A", never zero.
type Property struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CityName     string   `json:"cityName"`
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	Price        *float64 `json:"price"`
	TotalArea    *float64 `json:"totalArea"`
	PricePerSqft *float64 `json:"pricePerSqft"`
	RoomType     string   `json:"room_type"`
	PropertyType string   `json:"property_type"`
	HasBalcony   *bool    `json:"hasBalcony"`
	Description  string   `json:"description"`
	Score        *float64 `json:"score"`
}

// RecommendationRun is the /initial-preferences response.
type RecommendationRun struct {
	ThreadID string              `json:"thread_id"`
	State    RecommendationState `json:"state"`
}
