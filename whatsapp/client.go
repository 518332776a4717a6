package whatsapp

import (
	"net/http"
)

type Config struct {
	Token         string
	BaseURL       string
	PhoneNumberID string
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(token, baseURL, phoneNumberID string, httpClient http.Client) Client {
	client := Client{
		config: Config{
			Token:         token,
			BaseURL:       baseURL,
			PhoneNumberID: phoneNumberID,
		},
		httpClient: &httpClient,
	}

	return client
}
