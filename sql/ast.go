package sql

import "github.com/ferrumdb/ferrum/core"

type StatementType int

const (
	SelectStatementType StatementType = iota
	InsertStatementType
	UpdateStatementType
	DeleteStatementType
	CreateTableStatementType
	DropTableStatementType
	CreateDatabaseStatementType
	DropDatabaseStatementType
	CreateIndexStatementType
	DropIndexStatementType
	ShowDatabasesStatementType
	ShowTablesStatementType
)

func (t StatementType) String() string {
	switch t {
	case SelectStatementType:
		return "SELECT"
	case InsertStatementType:
		return "INSERT"
	case UpdateStatementType:
		return "UPDATE"
	case DeleteStatementType:
		return "DELETE"
	case CreateTableStatementType:
		return "CREATE TABLE"
	case DropTableStatementType:
		return "DROP TABLE"
	case CreateDatabaseStatementType:
		return "CREATE DATABASE"
	case DropDatabaseStatementType:
		return "DROP DATABASE"
	case CreateIndexStatementType:
		return "CREATE INDEX"
	case DropIndexStatementType:
		return "DROP INDEX"
	case ShowDatabasesStatementType:
		return "SHOW DATABASES"
	case ShowTablesStatementType:
		return "SHOW TABLES"
	default:
		return "UNKNOWN"
	}
}

type Statement interface {
	Type() StatementType
}

// SelectItem is one entry of a projection list: either a plain column
// reference or a function call, optionally aliased.
type SelectItem struct {
	Column   string
	Function *FunctionCall
	Alias    string
}

// FunctionCall names a registered function and its ordered arguments.
type FunctionCall struct {
	Name string
	Args []FunctionArg
}

// FunctionArg is a wildcard, a column reference, or a literal value.
type FunctionArg struct {
	Wildcard bool
	Column   string
	Value    *core.Cell
}

func WildcardArg() FunctionArg {
	return FunctionArg{Wildcard: true}
}

func ColumnArg(name string) FunctionArg {
	return FunctionArg{Column: name}
}

func ValueArg(c core.Cell) FunctionArg {
	return FunctionArg{Value: &c}
}

type SelectStatement struct {
	Database string
	Table    string
	Items    []SelectItem
	Where    WhereClause
	OrderBy  []OrderByClause
	Limit    int
	Offset   int
}

type InsertStatement struct {
	Database string
	Table    string
	Columns  []string // empty means table column order
	Rows     [][]core.Cell
}

type SetClause struct {
	Column string
	Value  core.Cell
}

type UpdateStatement struct {
	Database string
	Table    string
	Sets     []SetClause
	Where    WhereClause
}

type DeleteStatement struct {
	Database string
	Table    string
	Where    WhereClause
}

type CreateTableStatement struct {
	Database string
	Table    string
	Columns  []core.Column
}

type DropTableStatement struct {
	Database string
	Table    string
}

type CreateDatabaseStatement struct {
	Database string
}

type DropDatabaseStatement struct {
	Database string
}

type CreateIndexStatement struct {
	Name     string
	Database string
	Table    string
	Columns  []string
	Unique   bool
}

type DropIndexStatement struct {
	Name     string
	Database string
	Table    string
}

type ShowDatabasesStatement struct{}

type ShowTablesStatement struct {
	Database string
}

type WhereClause struct {
	Conditions []WhereCondition
	LogicalOps []LogicalOperator // AND/OR between conditions
}

type LogicalOperator int

const (
	LogicalAnd LogicalOperator = iota
	LogicalOr
)

type WhereOperator int

const (
	EqualsOperator WhereOperator = iota
	NotEqualsOperator
	LessThanOperator
	GreaterThanOperator
	LessThanOrEqualOperator
	GreaterThanOrEqualOperator
	IsNullOperator
	IsNotNullOperator
)

type WhereCondition struct {
	Column   string
	Operator WhereOperator
	Value    core.Cell // unused for IS NULL / IS NOT NULL
	Negated  bool
}

type OrderByClause struct {
	Column     string
	Descending bool
}

func (SelectStatement) Type() StatementType         { return SelectStatementType }
func (InsertStatement) Type() StatementType         { return InsertStatementType }
func (UpdateStatement) Type() StatementType         { return UpdateStatementType }
func (DeleteStatement) Type() StatementType         { return DeleteStatementType }
func (CreateTableStatement) Type() StatementType    { return CreateTableStatementType }
func (DropTableStatement) Type() StatementType      { return DropTableStatementType }
func (CreateDatabaseStatement) Type() StatementType { return CreateDatabaseStatementType }
func (DropDatabaseStatement) Type() StatementType   { return DropDatabaseStatementType }
func (CreateIndexStatement) Type() StatementType    { return CreateIndexStatementType }
func (DropIndexStatement) Type() StatementType      { return DropIndexStatementType }
func (ShowDatabasesStatement) Type() StatementType  { return ShowDatabasesStatementType }
func (ShowTablesStatement) Type() StatementType     { return ShowTablesStatementType }
