package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NewRelicErrorMiddleware forwards handler errors to the current New Relic
// transaction. nrgin starts the transaction and names it; handlers record
// unexpected failures with c.Error, and this middleware notices them once
// the handler chain has run. Without a transaction it is a no-op.
func NewRelicErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		txn := nrgin.Transaction(c)
		if txn == nil {
			return
		}

		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
