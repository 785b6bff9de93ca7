package httpserver

import (
	activationservice "dttracker/contexts/creator-marketing/activation-service"
	walletservice "dttracker/contexts/finance-core/wallet-service"
	scrapemonitorservice "dttracker/contexts/scrape-ops/scrape-monitor-service"
)

func newTestServer() *Server {
	return New(
		activationservice.NewInMemoryModule(nil, nil),
		walletservice.NewInMemoryModule(nil),
		scrapemonitorservice.NewInMemoryModule(nil, nil),
		nil,
		":0",
	)
}
