// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// @title RevenueLens API
// @version 1.0
// @description Sales CSV ingestion and revenue analytics.
// @description
// @description ## Dates
// @description
// @description `startDate` and `endDate` accept `2006-01-02` or RFC 3339 and are inclusive calendar days in UTC.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address. The refresh trigger allows 10 per minute.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "INVALID_RANGE", "message": "startDate must be on or before endDate"},
// @description   "metadata": {"timestamp": "2026-01-05T02:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/revenuelens/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Revenue
// @tag.description Load trigger and revenue views
//
// @tag.name Debug
// @tag.description Row counts and table samples
//
// @tag.name Core
// @tag.description Health checks
//
//go:generate swag init -g docs.go -d ./,../../internal/api,../../internal/models -o ../../docs --parseInternal
package main
