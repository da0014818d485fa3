package helpers

type ctxKey string

const RequestIDKey ctxKey = "requestId"
const AdminEmailKey ctxKey = "adminEmail"

const GO_TEST_ENV = "test"
const GO_PROD_ENV = "prod"

const API_PREFIX = "/api"
const USER_ID_KEY = "userId"
const EVENT_ID_KEY = "eventId"
const INCLUDE_INELIGIBLE_KEY = "include_ineligible"

const EVENT_LEVEL_TAG = "event_level"

const STORE_DRIVER_POSTGRES = "postgres"
const STORE_DRIVER_SQLITE = "sqlite"

const ERR_EVENT_LOCK_TIMEOUT = "timed out waiting for event lock"
