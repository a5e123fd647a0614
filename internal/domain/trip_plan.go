package domain

type Flight struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Stops        *int   `json:"stops,omitempty"`
}

// UserProfile is the owner snapshot carried by a trip plan. Phone, WhatsApp
// and Email are contact fields and are only shown after a consented match.
type UserProfile struct {
	FullName string `json:"full_name"`
	Image    string `json:"image"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

// TripPlan has exactly one owner and ownership never changes.
type TripPlan struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Destination string      `json:"destination"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Flight      Flight      `json:"flight"`
	User        UserProfile `json:"user"`
}

// WithoutContacts returns a copy with the contact fields cleared.
func (t TripPlan) WithoutContacts() TripPlan {
	t.User.Phone = ""
	t.User.WhatsApp = ""
	t.User.Email = ""
	return t
}
