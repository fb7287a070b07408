package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/energy/src/service"
)

func TestCheckCsvAcceptsValidHeader(t *testing.T) {
	verrs, err := service.IFileCheckerService.CheckCsv(strings.NewReader("timestamp,kwh\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, verrs)
}

func TestCheckCsvHeaderIsCaseInsensitiveAndBOMSafe(t *testing.T) {
	verrs, err := service.IFileCheckerService.CheckCsv(strings.NewReader("\uFEFFTimestamp,KWH,site\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, verrs)
}

func TestCheckCsvMissingColumns(t *testing.T) {
	verrs, err := service.IFileCheckerService.CheckCsv(strings.NewReader("time,usage\n1,2\n"), nil)
	require.NoError(t, err)
	require.Len(t, verrs, 2)
	assert.Contains(t, verrs[0].Message, "timestamp")
	assert.Contains(t, verrs[1].Message, "kwh")
}

func TestCheckCsvEmptyFile(t *testing.T) {
	verrs, err := service.IFileCheckerService.CheckCsv(strings.NewReader(""), nil)
	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "empty file", verrs[0].Message)
}
