package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
)

type AddDomainRequest struct {
	List   string `json:"list"`
	Domain string `json:"domain"`
}

func (r *AddDomainRequest) Validate() error {
	if !rulestore.List(r.List).Valid() {
		return fmt.Errorf("%w: %q", rulestore.ErrUnknownList, r.List)
	}
	if strings.TrimSpace(r.Domain) == "" {
		return errors.New("domain is required")
	}
	return nil
}

type ReloadRulesRequest struct {
	Reason string `json:"reason"`
}
