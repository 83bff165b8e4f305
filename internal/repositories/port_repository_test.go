package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

func TestPortRepository_ListPortsOrderedByCity(t *testing.T) {
	db, mock := newMock(t)

	expectTable(mock, "ports", true)
	mock.ExpectQuery("information_schema\\.columns").
		WithArgs("ports", "timezone").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("timezone"))
	mock.ExpectQuery("FROM ports ORDER BY city ASC, name ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "code", "timezone"}).
			AddRow("port-mks", "Soekarno-Hatta", "Makassar", "MKS", "Asia/Makassar").
			AddRow("port-sby", "Tanjung Perak", "Surabaya", "TPR", ""))

	list, err := PortRepository{DB: db}.ListPorts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Port{
		{ID: "port-mks", Name: "Soekarno-Hatta", City: "Makassar", Code: "MKS", Timezone: "Asia/Makassar"},
		{ID: "port-sby", Name: "Tanjung Perak", City: "Surabaya", Code: "TPR"},
	}, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortRepository_ListPortsWithoutTimezoneColumn(t *testing.T) {
	db, mock := newMock(t)

	expectTable(mock, "ports", true)
	mock.ExpectQuery("information_schema\\.columns").
		WithArgs("ports", "timezone").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectQuery("SELECT id, COALESCE\\(name,''\\), COALESCE\\(city,''\\), COALESCE\\(code,''\\), '' FROM ports").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "code", "timezone"}).
			AddRow("port-sby", "Tanjung Perak", "Surabaya", "TPR", ""))

	list, err := PortRepository{DB: db}.ListPorts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Timezone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortRepository_CreateDuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("information_schema\\.columns").
		WithArgs("ports", "timezone").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("INSERT INTO ports \\(id,name,city,code\\) VALUES \\(\\?,\\?,\\?,\\?\\)").
		WithArgs("port-sby", "Tanjung Perak", "Surabaya", nil).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := PortRepository{DB: db}.CreatePort(context.Background(), models.Port{ID: "port-sby", Name: "Tanjung Perak", City: "Surabaya"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
