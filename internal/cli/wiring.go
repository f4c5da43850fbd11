package cli

import (
	"fmt"
	"log"

	"github.com/campusdesk/advising-engine/config"
	"github.com/campusdesk/advising-engine/internal/advisor"
	"github.com/campusdesk/advising-engine/internal/knowledge"
	"github.com/campusdesk/advising-engine/internal/references"
	"github.com/campusdesk/advising-engine/services"
	"github.com/campusdesk/advising-engine/store"
)

// buildPipeline loads the data files named by the configuration and wires
// the full advising pipeline. The reference corpus is optional.
func buildPipeline(cfg *config.AppConfig) (services.Advisor, *store.KnowledgeBase, *store.ReferenceCorpus, error) {
	kb, err := store.LoadKnowledgeBase(cfg.Data.KnowledgeBase)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	log.Printf("Loaded %d knowledge base entries from %s", kb.Len(), cfg.Data.KnowledgeBase)

	var corpus *store.ReferenceCorpus
	var retriever services.Retriever
	if cfg.Data.ReferenceCorpus != "" {
		corpus, err = store.LoadReferenceCorpus(cfg.Data.ReferenceCorpus)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading reference corpus: %w", err)
		}
		log.Printf("Loaded %d reference documents from %s", corpus.Len(), cfg.Data.ReferenceCorpus)
		retriever = references.NewRetriever(corpus, &cfg.Advisor)
	} else {
		log.Printf("No reference corpus configured, reference retrieval disabled")
	}

	adv, err := advisor.New(&cfg.Advisor, knowledge.NewRetriever(kb), retriever, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building advisor: %w", err)
	}

	return adv, kb, corpus, nil
}
