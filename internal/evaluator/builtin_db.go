package evaluator

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/andrewesterhuizen/js-engine/internal/object"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var dbDrivers = map[string]bool{
	"mysql":    true,
	"postgres": true,
	"sqlite3":  true,
}

// dbState holds the connection and transaction handle tables for one
// evaluator instance.
type dbState struct {
	connections  map[int64]*sql.DB
	transactions map[int64]*sql.Tx
}

// installDB exposes the host db namespace: scripts opt in by calling
// db.open(driver, dsn) and pass the returned handle to the other operations.
func (e *Evaluator) installDB() {
	state := &dbState{
		connections:  map[int64]*sql.DB{},
		transactions: map[int64]*sql.Tx{},
	}

	db := e.heap.NewObject()

	db.SetProperty("open", e.newBuiltin("open", func(this object.Value, args []object.Value) object.Value {
		driver, ok := e.argAt(args, 0).(*object.String)
		if !ok {
			return e.throwTypeError("db.open expects a driver name")
		}
		dsn, ok := e.argAt(args, 1).(*object.String)
		if !ok {
			return e.throwTypeError("db.open expects a connection string")
		}
		if !dbDrivers[driver.Value] {
			return e.throwTypeError("unknown database driver %q", driver.Value)
		}

		conn, err := sql.Open(driver.Value, dsn.Value)
		if err != nil {
			return e.throwError("failed to open connection: %v", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return e.throwError("failed to ping database: %v", err)
		}

		e.nextHandle++
		state.connections[e.nextHandle] = conn
		return e.heap.NewNumber(float64(e.nextHandle))
	}))

	db.SetProperty("query", e.newBuiltin("query", func(this object.Value, args []object.Value) object.Value {
		conn, errValue := state.connection(e, args)
		if errValue != nil {
			return errValue
		}
		query, ok := e.argAt(args, 1).(*object.String)
		if !ok {
			return e.throwTypeError("db.query expects a query string")
		}

		params := dbParams(args[2:])

		var rows *sql.Rows
		var err error
		if tx, inTx := state.transactions[dbHandle(args)]; inTx {
			rows, err = tx.Query(query.Value, params...)
		} else {
			rows, err = conn.Query(query.Value, params...)
		}
		if err != nil {
			return e.throwError("query failed: %v", err)
		}
		defer rows.Close()

		return e.renderRows(rows)
	}))

	db.SetProperty("exec", e.newBuiltin("exec", func(this object.Value, args []object.Value) object.Value {
		conn, errValue := state.connection(e, args)
		if errValue != nil {
			return errValue
		}
		query, ok := e.argAt(args, 1).(*object.String)
		if !ok {
			return e.throwTypeError("db.exec expects a query string")
		}

		params := dbParams(args[2:])

		var result sql.Result
		var err error
		if tx, inTx := state.transactions[dbHandle(args)]; inTx {
			result, err = tx.Exec(query.Value, params...)
		} else {
			result, err = conn.Exec(query.Value, params...)
		}
		if err != nil {
			return e.throwError("exec failed: %v", err)
		}

		affected, _ := result.RowsAffected()
		lastID, _ := result.LastInsertId()

		summary := e.heap.NewObject()
		summary.SetProperty("rowsAffected", e.heap.NewNumber(float64(affected)))
		summary.SetProperty("lastInsertId", e.heap.NewNumber(float64(lastID)))
		return summary
	}))

	db.SetProperty("begin", e.newBuiltin("begin", func(this object.Value, args []object.Value) object.Value {
		conn, errValue := state.connection(e, args)
		if errValue != nil {
			return errValue
		}

		tx, err := conn.Begin()
		if err != nil {
			return e.throwError("failed to begin transaction: %v", err)
		}
		state.transactions[dbHandle(args)] = tx
		return e.argAt(args, 0)
	}))

	db.SetProperty("commit", e.newBuiltin("commit", func(this object.Value, args []object.Value) object.Value {
		tx, ok := state.transactions[dbHandle(args)]
		if !ok {
			return e.throwError("invalid transaction handle")
		}
		if err := tx.Commit(); err != nil {
			return e.throwError("failed to commit transaction: %v", err)
		}
		delete(state.transactions, dbHandle(args))
		return e.argAt(args, 0)
	}))

	db.SetProperty("rollback", e.newBuiltin("rollback", func(this object.Value, args []object.Value) object.Value {
		tx, ok := state.transactions[dbHandle(args)]
		if !ok {
			return e.throwError("invalid transaction handle")
		}
		if err := tx.Rollback(); err != nil {
			return e.throwError("failed to rollback transaction: %v", err)
		}
		delete(state.transactions, dbHandle(args))
		return e.argAt(args, 0)
	}))

	db.SetProperty("close", e.newBuiltin("close", func(this object.Value, args []object.Value) object.Value {
		handle := dbHandle(args)
		if tx, ok := state.transactions[handle]; ok {
			tx.Rollback()
			delete(state.transactions, handle)
		}
		if conn, ok := state.connections[handle]; ok {
			conn.Close()
			delete(state.connections, handle)
		}
		return e.undefined()
	}))

	e.global.SetProperty("db", db)
}

func dbHandle(args []object.Value) int64 {
	if len(args) == 0 {
		return 0
	}
	if num, ok := args[0].(*object.Number); ok {
		return int64(num.Value)
	}
	return 0
}

func (s *dbState) connection(e *Evaluator, args []object.Value) (*sql.DB, object.Value) {
	conn, ok := s.connections[dbHandle(args)]
	if !ok {
		return nil, e.throwError("invalid connection handle")
	}
	return conn, nil
}

func dbParams(args []object.Value) []interface{} {
	params := make([]interface{}, len(args))
	for i, arg := range args {
		switch arg := arg.(type) {
		case *object.Number:
			params[i] = arg.Value
		case *object.String:
			params[i] = arg.Value
		case *object.Boolean:
			params[i] = arg.Value
		case *object.Null, *object.Undefined:
			params[i] = nil
		default:
			params[i] = object.DefaultToString(arg)
		}
	}
	return params
}

func (e *Evaluator) renderRows(rows *sql.Rows) object.Value {
	columns, _ := rows.Columns()
	types, _ := rows.ColumnTypes()

	var resultRows []object.Value
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		rows.Scan(pointers...)

		row := e.heap.NewObject()
		for i, col := range columns {
			var typeName string
			if i < len(types) {
				typeName = types[i].DatabaseTypeName()
			}
			row.SetProperty(col, e.dbValue(values[i], typeName))
		}
		resultRows = append(resultRows, row)
	}

	return e.heap.NewArray(resultRows)
}

func (e *Evaluator) dbValue(v interface{}, dbType string) object.Value {
	if v == nil {
		return e.heap.Null()
	}
	switch v := v.(type) {
	case int64:
		return e.heap.NewNumber(float64(v))
	case float64:
		return e.heap.NewNumber(v)
	case []byte:
		return e.heap.NewString(string(v))
	case string:
		return e.heap.NewString(v)
	case bool:
		return e.heap.NewBoolean(v)
	case time.Time:
		return e.heap.NewString(v.Format(time.RFC3339))
	default:
		return e.heap.NewString(fmt.Sprintf("%v", v))
	}
}
