package redis

const (
	// replaceDayScript atomically replaces every archived row of one date
	replaceDayScript = `
local index_key = KEYS[1]       -- {prefix}:days
local day_prefix = ARGV[1]      -- {prefix}:day:
local date = ARGV[2]
local score = ARGV[3]
local fields_per_row = 8

-- Drop whatever an earlier run stored for this date
local existing = redis.call('ZRANGEBYSCORE', index_key, score, score)
for _, member in ipairs(existing) do
  redis.call('DEL', day_prefix .. member)
  redis.call('ZREM', index_key, member)
end

local count = 0
for i = 4, #ARGV, fields_per_row do
  local member = date .. ':' .. ARGV[i]
  redis.call('HSET', day_prefix .. member,
    'date', date,
    'seq', ARGV[i],
    'work_seconds', ARGV[i + 1],
    'flags', ARGV[i + 2],
    'week_closed', ARGV[i + 3],
    'week_worked_seconds', ARGV[i + 4],
    'week_balance_seconds', ARGV[i + 5],
    'source', ARGV[i + 6],
    'processed_at', ARGV[i + 7]
  )
  redis.call('ZADD', index_key, score, member)
  count = count + 1
end

return count
`

	// deleteDaysBeforeScript removes every row scored below the cutoff
	deleteDaysBeforeScript = `
local index_key = KEYS[1]       -- {prefix}:days
local day_prefix = ARGV[1]      -- {prefix}:day:
local cutoff = ARGV[2]

local members = redis.call('ZRANGEBYSCORE', index_key, '-inf', '(' .. cutoff)
for _, member in ipairs(members) do
  redis.call('DEL', day_prefix .. member)
end
if #members > 0 then
  redis.call('ZREMRANGEBYSCORE', index_key, '-inf', '(' .. cutoff)
end

return #members
`
)
