package mysql

const insertBusinessSQL = `
INSERT INTO businesses
  (place_id, business_name, status, record)
VALUES
  (?, ?, ?, ?)
`

const updateBusinessSQL = `
UPDATE businesses
SET place_id      = ?,
    business_name = ?,
    status        = ?,
    record        = ?,
    updated_at    = CURRENT_TIMESTAMP
WHERE id = ?
`

// Note: `record` holds the full document; the other columns exist for the
// list projection and lookups so listing never deserializes every document.
const listBusinessesSQL = `
SELECT id, business_name, place_id, status, created_at
FROM businesses
ORDER BY created_at DESC, id DESC
`

const getBusinessSQL = `
SELECT id, status, record
FROM businesses
WHERE id = ?
`
