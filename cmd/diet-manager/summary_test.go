package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diet-manager/internal/app"
	"diet-manager/internal/models"
	"diet-manager/internal/storage"
)

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "diet.db"))
	require.NoError(t, err)
	session := app.Open(store, storage.NewProfileFile(filepath.Join(dir, "profile.yaml")))
	defer session.Close()

	date := models.Date{Year: 2024, Month: time.March, Day: 7}
	oats := session.Catalog.AddBasicFood("Oats", nil, 150)
	session.Log.AddEntry(date, models.TimeOfDay{Hour: 8}, models.Breakfast, oats.ID(), 2)

	var out bytes.Buffer
	require.NoError(t, printSummary(&out, session, date, true))

	text := out.String()
	assert.Contains(t, text, "Date:      2024-03-07")
	assert.Contains(t, text, "Consumed:  300.0")
	assert.Contains(t, text, "Breakfast  300.0")
	assert.Contains(t, text, "2024-03-01")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "diet-manager version "+version+"\n", out.String())
}
