package postgres_test

import (
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/postgres"
)

var errSyntax = errors.New(`ERROR: syntax error at or near "SELEC" (SQLSTATE 42601)`)

func (suite *PoolTestSuite) TestExec() {
	tcs := []struct {
		name     string
		setup    func()
		expected error
	}{
		{
			name: "Affected",
			setup: func() {
				suite.mock.ExpectExec("UPDATE widgets").WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name: "Zero-Affected",
			setup: func() {
				suite.mock.ExpectExec("UPDATE widgets").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expected: postgres.ErrNotFound,
		},
		{
			name: "Syntax",
			setup: func() {
				suite.mock.ExpectExec("UPDATE widgets").WillReturnError(errSyntax)
			},
			expected: waypoint.ErrNotValid,
		},
		{
			name: "Err",
			setup: func() {
				suite.mock.ExpectExec("UPDATE widgets").WillReturnError(testErr)
			},
			expected: waypoint.ErrUnexpected,
		},
	}

	for _, tc := range tcs {
		suite.Run(tc.name, func() {
			// Arrange
			tc.setup()

			// Act
			err := suite.pool.DB().Exec("UPDATE widgets SET name = 'x'")

			// Assert
			if tc.expected == nil {
				suite.Require().Nil(err)
				return
			}

			suite.Require().ErrorIs(err, tc.expected)
		})
	}
}

func (suite *PoolTestSuite) TestRaw() {
	// Arrange
	suite.mock.ExpectQuery("SELECT id, name FROM widgets").
		WithArgs("a%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "abc").AddRow(2, "axe"))

	var actual []widget

	// Act
	err := suite.pool.DB().Raw(&actual, "SELECT id, name FROM widgets WHERE name LIKE ?", "a%")

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]widget{{ID: 1, Name: "abc"}, {ID: 2, Name: "axe"}}, actual)
}

func (suite *PoolTestSuite) TestFirst() {
	// Arrange
	suite.mock.ExpectQuery(`SELECT \* FROM "widgets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	var actual widget

	// Act
	err := suite.pool.DB().Where("name = ?", "gone").First(&actual)

	// Assert
	suite.Require().ErrorIs(err, postgres.ErrNotFound)
}

func (suite *PoolTestSuite) TestFind() {
	// Arrange
	suite.mock.ExpectQuery(`SELECT \* FROM "widgets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "cog"))

	var actual []widget

	// Act
	err := suite.pool.DB().Order("id").Limit(5).Find(&actual)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(actual, 1)
	suite.Require().Equal("cog", actual[0].Name)
}
