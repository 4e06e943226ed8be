package fiat

import "encoding/xml"

const (
	// ProviderName is used for metrics and monitoring entries of the fiat feed
	ProviderName = "fiat"

	SourceECB          = "ecb"
	SourceExchangeRate = "exchangerate.host"

	// DefaultBase is the ECB reference currency
	DefaultBase = "EUR"
)

// ecbEnvelope is the eurofxref-daily.xml document:
//
//	<gesmes:Envelope>
//	  <Cube>
//	    <Cube time="2024-01-05">
//	      <Cube currency="USD" rate="1.0921"/>
type ecbEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Cube    struct {
		Days []ecbDay `xml:"Cube"`
	} `xml:"Cube"`
}

type ecbDay struct {
	Time  string    `xml:"time,attr"`
	Rates []ecbRate `xml:"Cube"`
}

type ecbRate struct {
	Currency string `xml:"currency,attr"`
	Rate     string `xml:"rate,attr"`
}

// exchangeRateResponse is the JSON fallback feed
type exchangeRateResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}
