package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseLogLevel("error"))
	assert.Equal(t, gormlogger.Info, parseLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel(""))
}

func TestGormLoggerTrace(t *testing.T) {
	query := func() (string, int64) { return `SELECT * FROM "calls"`, 0 }

	tests := []struct {
		name  string
		level gormlogger.LogLevel
		begin time.Time
		err   error
		want  string
	}{
		{name: "failed query", level: gormlogger.Warn, begin: time.Now(), err: errors.New("relation missing"), want: "Query failed"},
		{name: "record not found is quiet", level: gormlogger.Warn, begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "slow query", level: gormlogger.Warn, begin: time.Now().Add(-time.Second), want: "Slow query"},
		{name: "fast query at warn", level: gormlogger.Warn, begin: time.Now()},
		{name: "silent", level: gormlogger.Silent, begin: time.Now(), err: errors.New("boom")},
		{name: "every query at info", level: gormlogger.Info, begin: time.Now(), want: `SELECT * FROM \"calls\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := &gormLogger{log: zerolog.New(&buf).Level(zerolog.DebugLevel), level: tt.level}
			l.Trace(context.Background(), tt.begin, query, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
