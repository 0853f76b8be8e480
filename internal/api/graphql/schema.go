package graphql

// Schema is the full GraphQL surface. Auth is decided per field: most
// mutations require a bearer token, `users` is public with an owner-only
// email field, and `createOrder` additionally accepts a delegated seller
// token inside its input.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time

	type Query {
		users(query: String, first: Int, skip: Int): [User!]!
		me: User!
		raffles(first: Int, skip: Int): [Raffle!]!
		myRaffles(first: Int, skip: Int): [Raffle!]!
	}

	type Mutation {
		createUser(data: CreateUserInput!): AuthPayload!
		loginUser(data: LoginUserInput!): AuthPayload!
		deleteUser: User!
		updateUser(data: UpdateUserInput!): User!
		createRaffle(data: CreateRaffleInput!): Raffle!
		createPrize(id: ID!, data: CreatePrizeInput!): Prize!
		updatePrize(id: ID!, data: UpdatePrizeInput!): Prize!
		deletePrize(id: ID!): Prize!
		createUserRaffle(id: ID!, userId: ID!, data: UserRaffleInput!): UserRaffle!
		updateUserRaffle(id: ID!, userId: ID!, data: UserRaffleInput!): UserRaffle!
		deleteUserRaffle(id: ID!, userId: ID!): UserRaffle!
		createOrder(data: CreateOrderInput!): Order!
	}

	type User {
		id: ID!
		name: String!
		email: String
		cpf: String
		siteRole: String!
	}

	type AuthPayload {
		token: String!
		user: User!
	}

	type Raffle {
		id: ID!
		size: Int!
		drawDate: Time!
		price: Float!
		isPaid: Boolean!
		totalCost: Float!
		prizes: [Prize!]!
	}

	type Prize {
		id: ID!
		raffleId: ID!
		prizeNumber: Int!
		prize: String!
		description: String!
	}

	type UserRaffle {
		id: ID!
		userId: ID!
		raffleId: ID!
		raffleRole: String!
	}

	type Order {
		id: ID!
		raffleId: ID!
		buyerId: ID!
		sellerId: ID!
		raffleNumber: Int!
		paymentMethod: String!
		status: String!
	}

	input CreateUserInput {
		name: String!
		email: String!
		cpf: String!
		password: String!
	}

	input LoginUserInput {
		email: String
		cpf: String
		password: String!
	}

	input UpdateUserInput {
		name: String
		email: String
		password: String
	}

	input CreateRaffleInput {
		size: Int!
		drawDate: Time!
		price: Float!
		prizes: CreatePrizeInput!
	}

	input CreatePrizeInput {
		prizeNumber: Int!
		prize: String!
		description: String
	}

	input UpdatePrizeInput {
		prizeNumber: Int
		prize: String
		description: String
	}

	input UserRaffleInput {
		userRole: String!
	}

	input CreateOrderInput {
		raffleId: ID!
		raffleNumber: Int!
		paymentMethod: String!
		buyerId: ID
		orderStatus: String
		sellerToken: String
	}
`
