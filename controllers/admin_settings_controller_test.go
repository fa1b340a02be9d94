package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekart/PriceRules/models"
)

func TestUpdateSettings_EmptyFromTextResetsToDefault(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.StoreSettings{
		ApplyRule: "lowest",
		ShowTo:    "all",
		FromText:  "Desde",
	}).Error)

	c, w := testContext(t)
	setJSONBody(c, http.MethodPut,
		`{"apply_rule":"highest","show_to":"all","exclusive_rule":"","from_text":""}`)
	UpdateSettings(c)

	require.Equal(t, http.StatusOK, w.Code)

	var settings models.StoreSettings
	require.NoError(t, db.First(&settings).Error)
	assert.Equal(t, "highest", settings.ApplyRule)
	assert.Equal(t, "From", settings.FromText)
}

func TestUpdateSettings_KeepsCustomFromText(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.StoreSettings{
		ApplyRule: "lowest",
		ShowTo:    "all",
		FromText:  "From",
	}).Error)

	c, w := testContext(t)
	setJSONBody(c, http.MethodPut,
		`{"apply_rule":"lowest","show_to":"logged_in","exclusive_rule":"","from_text":"Desde"}`)
	UpdateSettings(c)

	require.Equal(t, http.StatusOK, w.Code)

	var settings models.StoreSettings
	require.NoError(t, db.First(&settings).Error)
	assert.Equal(t, "logged_in", settings.ShowTo)
	assert.Equal(t, "Desde", settings.FromText)
}
