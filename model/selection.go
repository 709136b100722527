package model

// Selection is what the user currently points the playground at.
// CustomHeaders holds the raw JSON object text as typed by the user.
type Selection struct {
	ChainName     string `json:"chainName"`
	NetworkName   string `json:"networkName"`
	ProviderName  string `json:"providerName"`
	CustomURL     string `json:"customUrl"`
	CustomHeaders string `json:"customHeaders"`
}

type ProbeResult struct {
	OK    bool   `json:"ok"`
	Label string `json:"label"`
}
