package http

import (
	"time"

	"bloom/internal/core/application/usecases/queries"
	"bloom/internal/core/domain/model/shipping"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type quoteResponse struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message,omitempty"`
	ZoneID  string  `json:"zoneId,omitempty"`
	Zone    string  `json:"zone,omitempty"`
	City    string  `json:"city,omitempty"`
	Cost    float64 `json:"cost"`
	ETADays string  `json:"etaDays,omitempty"`
	Note    string  `json:"note,omitempty"`
}

func toQuoteResponse(q shipping.Quote) quoteResponse {
	return quoteResponse{
		Valid:   q.Valid,
		Message: q.Message,
		ZoneID:  q.ZoneID,
		Zone:    q.Zone,
		City:    q.City,
		Cost:    q.Cost.InexactFloat64(),
		ETADays: q.ETADays,
		Note:    q.Note,
	}
}

type lineReport struct {
	Item        int            `json:"item"`
	Issues      []string       `json:"issues"`
	LateWarning string         `json:"lateWarning,omitempty"`
	Shipping    *quoteResponse `json:"shipping,omitempty"`
	Products    float64        `json:"products"`
	ShippingFee float64        `json:"shippingFee"`
}

type totalsResponse struct {
	Products        float64 `json:"products"`
	Shipping        float64 `json:"shipping"`
	Subtotal        float64 `json:"subtotal"`
	IVA             float64 `json:"iva"`
	Total           float64 `json:"total"`
	PendingShipping []int   `json:"pendingShipping"`
}

type evaluationResponse struct {
	CanCheckout      bool           `json:"canCheckout"`
	BuyerOK          bool           `json:"buyerOk"`
	BuyerIssues      []string       `json:"buyerIssues"`
	BlockingMessages []string       `json:"blockingMessages"`
	Lines            []lineReport   `json:"lines"`
	Totals           totalsResponse `json:"totals"`
}

type presignRequest struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}

type presignResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type grantResponse struct {
	GrantID     string    `json:"grantId"`
	ItemID      string    `json:"itemId"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func toGrantResponses(grants []queries.GetOrderUploadGrantsQueryResponse) []grantResponse {
	out := make([]grantResponse, len(grants))
	for i, g := range grants {
		out[i] = grantResponse{
			GrantID:     g.GrantID.String(),
			ItemID:      g.ItemID.String(),
			Key:         g.ObjectKey,
			ContentType: g.ContentType,
			IssuedAt:    g.IssuedAt,
			ExpiresAt:   g.ExpiresAt,
		}
	}
	return out
}
