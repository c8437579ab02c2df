// Package admin is a read-only operational HTTP surface. All mutations go
// through the GBTP socket; this API only inspects ledger state.
package admin

import (
	"fmt"
	"math"
	"net/http"

	"github.com/Rhymond/go-money"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/gbtpbank/gbtp-api/cmd/bankd/ledger"
	"github.com/gbtpbank/gbtp-api/internal/cache"
	"github.com/gbtpbank/gbtp-api/internal/web"
)

const (
	accounts           = "/accounts"
	balanceByAccountId = "/accounts/:id/balance"
	health             = "/health"
)

type Application struct {
	Ledger  *ledger.Ledger
	Cache   *cache.Redis
	handler http.Handler
}

func (a *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func NewApplication(l *ledger.Ledger, c *cache.Redis) *Application {
	app := Application{
		Ledger: l,
		Cache:  c,
	}

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, accounts, app.FindAllAccounts)
	router.HandlerFunc(http.MethodGet, balanceByAccountId, app.GetBalance)
	router.HandlerFunc(http.MethodGet, health, app.Health)

	app.handler = router
	return &app
}

func (a *Application) FindAllAccounts(w http.ResponseWriter, _ *http.Request) {
	web.Respond(w, http.StatusOK, a.Ledger.Accounts())
}

func (a *Application) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	if len(id) == 0 {
		web.RespondError(w, http.StatusBadRequest, "account id is missing")
		return
	}

	// get balance from cache
	if a.Cache != nil {
		if b, err := a.Cache.GetBalance(id); err == nil {
			web.Respond(w, http.StatusOK, map[string]string{"balance": display(b)})
			return
		}
		log.Warnf("failed to get balance from cache for account id %s", id)
	}

	// not in cache, read from the ledger
	b, err := a.Ledger.GetBalance(id)
	if err != nil {
		web.RespondError(w, http.StatusNotFound, fmt.Sprintf("account id %s is not found", id))
		return
	}

	web.Respond(w, http.StatusOK, map[string]string{"balance": display(b)})
}

func (a *Application) Health(w http.ResponseWriter, _ *http.Request) {
	web.Respond(w, http.StatusOK, map[string]string{"status": "up"})
}

func display(balance float64) string {
	m := money.New(int64(math.Round(balance*100)), "BRL")
	return m.Display()
}
