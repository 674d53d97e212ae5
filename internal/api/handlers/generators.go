package handlers

import (
	"net/http"

	"blotto-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ListGenerators handles GET /api/v1/generators
func ListGenerators(c *gin.Context) {
	generators := []models.GeneratorInfo{
		{
			Name:        "biased",
			Description: "Skewed random allocations: a large stake on castle 8, a medium one on castle 7, little on 9 and 10. Requires 10 battlefields.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "total",
					Type:        "int",
					Description: "Units every candidate must place",
					Default:     100,
				},
				{
					Name:        "count",
					Type:        "int",
					Description: "Number of candidates to generate",
					Default:     1500,
				},
			},
		},
		{
			Name:        "simplex",
			Description: "Uniform over every allocation summing to the total (stars and bars).",
			Parameters: []models.ParameterInfo{
				{
					Name:        "total",
					Type:        "int",
					Description: "Units every candidate must place",
					Default:     100,
				},
				{
					Name:        "count",
					Type:        "int",
					Description: "Number of candidates to generate",
					Default:     1500,
				},
			},
		},
		{
			Name:        "oracle",
			Description: "Exact best response to the pool's empirical distribution. Deterministic; count copies of one allocation.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "total",
					Type:        "int",
					Description: "Units the best response must place",
					Default:     100,
				},
			},
		},
	}

	log.Debug().Int("count", len(generators)).Msg("listing generators")
	c.JSON(http.StatusOK, gin.H{"generators": generators})
}
